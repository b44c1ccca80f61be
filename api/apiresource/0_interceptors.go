package apiresource

import (
	"context"

	"github.com/fulldump/restdb/service"
)

const ContextServicerKey = "5b1d2c3e-8f1a-4c7e-9a57-2f3d0e6b9c41"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
