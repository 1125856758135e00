package api

import (
	"context"
	"errors"
)

type keyType string

const adminSubjectKey keyType = "adminSubject"

// ctxWithAdminSubject records the subject of a verified admin token
func ctxWithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

func ctxGetAdminSubject(ctx context.Context) (string, error) {
	if ctxValue := ctx.Value(adminSubjectKey); ctxValue == nil {
		return "", errors.New("key not found in context")
	} else if valueAsString, ok := ctxValue.(string); !ok {
		return "", errors.New("value is not of type `string`")
	} else {
		return valueAsString, nil
	}
}

// adminSubject returns the token subject for logging, or "anonymous" on ungated routes
func adminSubject(ctx context.Context) string {
	subject, err := ctxGetAdminSubject(ctx)
	if err != nil {
		return "anonymous"
	}
	return subject
}
