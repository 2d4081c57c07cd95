package app

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-task-tracker/internal/config"
)

// MustDeleteUser removes a user and every task the user owns.
func MustDeleteUser(externalID string) {
	if config.Global().Storage.Driver != config.StorageDriverPostgres {
		err := errors.New("user deletion requires postgres storage")
		globalLogger.Error().
			Err(err).
			Msg("failed to delete user")
		panic(err)
	}

	err := newUserService(newStorage()).DeleteUser(context.Background(), externalID)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("external_id", externalID).
			Msg("failed to delete user")
		panic(err)
	}
	globalLogger.Info().
		Str("external_id", externalID).
		Msg("deleted user")
}
