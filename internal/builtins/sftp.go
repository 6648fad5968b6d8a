// SFTP built-ins over github.com/pkg/sftp and golang.org/x/crypto/ssh,
// both direct teacher dependencies (the teacher uses this pair for its
// own deployment-artifact upload path). Gated by Config.AllowNet like
// every other built-in that reaches off-host.
package builtins

import (
	"io"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/stuncs69/vexel/internal/config"
)

func init() {
	register("sftp_read_file", sftpReadFile)
	register("sftp_write_file", sftpWriteFile)
}

func sftpClient(host, user, password string) (*ssh.Client, *sftp.Client, error) {
	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}
	conn, err := ssh.Dial("tcp", host, cfg)
	if err != nil {
		return nil, nil, err
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, client, nil
}

func sftpReadFile(args []Value) (Value, error) {
	if len(args) != 4 {
		return argError("sftp_read_file")
	}
	if !config.Current.AllowNet {
		return securityDenied("SEC-0005")
	}
	host, ok1 := str(args[0])
	user, ok2 := str(args[1])
	password, ok3 := str(args[2])
	path, ok4 := str(args[3])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return argError("sftp_read_file")
	}
	conn, client, err := sftpClient(host, user, password)
	if err != nil {
		return nil, nil
	}
	defer conn.Close()
	defer client.Close()
	f, err := client.Open(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil
	}
	return stringResult(string(data)), nil
}

func sftpWriteFile(args []Value) (Value, error) {
	if len(args) != 5 {
		return argError("sftp_write_file")
	}
	if !config.Current.AllowNet {
		return securityDenied("SEC-0005")
	}
	host, ok1 := str(args[0])
	user, ok2 := str(args[1])
	password, ok3 := str(args[2])
	path, ok4 := str(args[3])
	contents, ok5 := str(args[4])
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return argError("sftp_write_file")
	}
	conn, client, err := sftpClient(host, user, password)
	if err != nil {
		return nil, nil
	}
	defer conn.Close()
	defer client.Close()
	f, err := client.Create(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	if _, err := f.Write([]byte(contents)); err != nil {
		return nil, nil
	}
	return boolResult(true), nil
}
