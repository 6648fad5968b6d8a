// Database built-ins over database/sql, wired to the three drivers the
// example pack carries: modernc.org/sqlite (pure Go, driver name
// "sqlite"), github.com/lib/pq (driver name "postgres"), and
// github.com/go-sql-driver/mysql (driver name "mysql"). The
// package-level mutex-guarded handle map follows the teacher's own
// dbConnectionsMu/dbConnections pattern for its connection cache
// (pkg/db), just keyed by an integer handle instead of a DSN string
// since Vexel scripts address connections by the handle db_open hands
// back.
package builtins

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/stuncs69/vexel/internal/object"
)

func init() {
	register("db_open", dbOpen)
	register("db_query", dbQuery)
	register("db_exec", dbExec)
	register("db_close", dbClose)
}

var (
	dbConnectionsMu sync.Mutex
	dbConnections   = map[int32]*sql.DB{}
	dbNextHandle    int32
)

func dbOpen(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("db_open")
	}
	driver, ok1 := str(args[0])
	dsn, ok2 := str(args[1])
	if !ok1 || !ok2 {
		return argError("db_open")
	}
	if driver != "sqlite" && driver != "postgres" && driver != "mysql" {
		return nil, nil
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, nil
	}
	dbConnectionsMu.Lock()
	dbNextHandle++
	handle := dbNextHandle
	dbConnections[handle] = conn
	dbConnectionsMu.Unlock()
	return numberResult(handle), nil
}

func dbConn(handle int32) (*sql.DB, bool) {
	dbConnectionsMu.Lock()
	defer dbConnectionsMu.Unlock()
	conn, ok := dbConnections[handle]
	return conn, ok
}

func dbQuery(args []Value) (Value, error) {
	if len(args) < 2 {
		return argError("db_query")
	}
	handle, ok := num(args[0])
	query, qok := str(args[1])
	if !ok || !qok {
		return argError("db_query")
	}
	conn, ok := dbConn(handle)
	if !ok {
		return nil, nil
	}
	params := sqlParams(args[2:])
	rows, err := conn.Query(query, params...)
	if err != nil {
		return nil, nil
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil
	}
	var result []Value
	for rows.Next() {
		scanTargets := make([]any, len(cols))
		scanValues := make([]any, len(cols))
		for i := range scanTargets {
			scanTargets[i] = &scanValues[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, nil
		}
		row := object.NewObject()
		for i, col := range cols {
			row.Set(col, sqlValueToVexel(scanValues[i]))
		}
		result = append(result, row)
	}
	return arrayResult(result), nil
}

func dbExec(args []Value) (Value, error) {
	if len(args) < 2 {
		return argError("db_exec")
	}
	handle, ok := num(args[0])
	query, qok := str(args[1])
	if !ok || !qok {
		return argError("db_exec")
	}
	conn, ok := dbConn(handle)
	if !ok {
		return nil, nil
	}
	res, err := conn.Exec(query, sqlParams(args[2:])...)
	if err != nil {
		return nil, nil
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, nil
	}
	return numberResult(int32(affected)), nil
}

func dbClose(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("db_close")
	}
	handle, ok := num(args[0])
	if !ok {
		return argError("db_close")
	}
	dbConnectionsMu.Lock()
	conn, exists := dbConnections[handle]
	delete(dbConnections, handle)
	dbConnectionsMu.Unlock()
	if !exists {
		return nil, nil
	}
	return boolResult(conn.Close() == nil), nil
}

func sqlParams(args []Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case *object.Number:
			out[i] = v.Value
		case *object.String:
			out[i] = v.Value
		case *object.Boolean:
			out[i] = v.Value
		default:
			out[i] = displayString(a)
		}
	}
	return out
}

func sqlValueToVexel(v any) Value {
	switch val := v.(type) {
	case nil:
		return &object.Null{}
	case int64:
		return numberResult(int32(val))
	case float64:
		return numberResult(int32(val))
	case bool:
		return boolResult(val)
	case []byte:
		return stringResult(string(val))
	case string:
		return stringResult(val)
	default:
		return stringResult(fmt.Sprintf("%v", val))
	}
}
