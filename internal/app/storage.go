package app

import (
	"fmt"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/query"
	"github.com/adanyl0v/go-task-tracker/internal/repository"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

type storage struct {
	tasks repository.TaskRepository
	users repository.UserRepository
	store repository.Pinger
}

// MustConnectStorage opens the backend selected by STORAGE_DRIVER and,
// when requested, applies the schema.
func MustConnectStorage() {
	cfg := config.Global().Storage
	if cfg.Driver != config.StorageDriverPostgres {
		globalLogger.Info().
			Str("driver", cfg.Driver).
			Msg("using in-process storage")
		return
	}

	MustConnectPostgres()
	if cfg.Migrate {
		MustMigratePostgres()
	}
}

func DisconnectStorage() {
	if config.Global().Storage.Driver == config.StorageDriverPostgres {
		DisconnectPostgres()
	}
}

func newStorage() storage {
	switch driver := config.Global().Storage.Driver; driver {
	case config.StorageDriverPostgres:
		return storage{
			tasks: repository.NewPostgresTasks(globalLogger, globalPostgresPool),
			users: repository.NewPostgresUsers(globalLogger, globalPostgresPool),
			store: globalPostgresPool,
		}
	case config.StorageDriverMemory:
		memory := repository.NewMemoryStore()
		return storage{
			tasks: memory.Tasks(),
			users: memory.Users(),
			store: memory,
		}
	default:
		panic(fmt.Errorf("unknown storage driver: %s", driver))
	}
}

func newUserService(st storage) services.UserService {
	cache := repository.NewIdentityCache(globalLogger, globalRedisClient, config.Global().Redis.IdentityTTL)
	return services.NewUserService(globalLogger, st.users, st.tasks, cache)
}

func newTaskService(st storage) services.TaskService {
	pagination := config.Global().Pagination
	return services.NewTaskService(globalLogger, st.tasks, query.NewBuilder(globalLogger), services.Pagination{
		DefaultPageSize: pagination.DefaultPageSize,
		MaxPageSize:     pagination.MaxPageSize,
	})
}
