package builtins

import (
	"github.com/stuncs69/vexel/internal/channels"
	"github.com/stuncs69/vexel/internal/object"
	"github.com/stuncs69/vexel/internal/verrors"
)

func init() {
	register("thread_channel", threadChannel)
	register("thread_send", threadSend)
	register("thread_recv", threadRecv)
	register("thread_close", threadClose)
}

func threadChannel(args []Value) (Value, error) {
	if len(args) != 0 {
		return argError("thread_channel")
	}
	return numberResult(channels.Create()), nil
}

func threadSend(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("thread_send")
	}
	id, ok := num(args[0])
	if !ok {
		return argError("thread_send")
	}
	if !channels.Send(id, args[1]) {
		return channelError(id)
	}
	return boolResult(true), nil
}

func threadRecv(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("thread_recv")
	}
	id, ok := num(args[0])
	if !ok {
		return argError("thread_recv")
	}
	if !channels.Exists(id) {
		return channelError(id)
	}
	v, ok := channels.Recv(id)
	if !ok {
		return &object.Null{}, nil
	}
	return v, nil
}

func threadClose(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("thread_close")
	}
	id, ok := num(args[0])
	if !ok {
		return argError("thread_close")
	}
	if !channels.Close(id) {
		return channelError(id)
	}
	return boolResult(true), nil
}

func channelError(id int32) (Value, error) {
	return nil, verrors.New("RUNTIME-0013", map[string]any{"ID": id})
}
