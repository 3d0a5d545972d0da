package contextx

import (
	"context"
	"net"
	"time"
)

type receiptTimeKey struct{}

func WithReceiptTime(parent context.Context, rt time.Time) context.Context {
	return context.WithValue(parent, receiptTimeKey{}, rt)
}

func ReceiptTimeFromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(receiptTimeKey{}).(time.Time)
	return t, ok
}

type peerAddrKey struct{}

func WithPeerAddr(parent context.Context, addr net.Addr) context.Context {
	return context.WithValue(parent, peerAddrKey{}, addr)
}

func PeerAddrFromContext(ctx context.Context) (net.Addr, bool) {
	addr, ok := ctx.Value(peerAddrKey{}).(net.Addr)
	return addr, ok
}
