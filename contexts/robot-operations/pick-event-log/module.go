package pickeventlog

import (
	"log/slog"

	httpadapter "picklog/contexts/robot-operations/pick-event-log/adapters/http"
	"picklog/contexts/robot-operations/pick-event-log/adapters/memory"
	"picklog/contexts/robot-operations/pick-event-log/application/commands"
	"picklog/contexts/robot-operations/pick-event-log/application/queries"
	"picklog/contexts/robot-operations/pick-event-log/ports"
)

// Module is the composition surface for the pick event log.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Log           ports.EventLog
	Publisher     ports.EventPublisher
	IDGenerator   ports.IDGenerator
	Topic         string
	SourceService string
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	logPick := commands.LogPickUseCase{
		Log:           deps.Log,
		Publisher:     deps.Publisher,
		IDGenerator:   deps.IDGenerator,
		Topic:         deps.Topic,
		SourceService: deps.SourceService,
		Logger:        deps.Logger,
	}
	listPicks := queries.ListPicksUseCase{
		Log:    deps.Log,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			LogPick:   logPick,
			ListPicks: listPicks,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the use cases against a fresh in-memory log.
// A nil publisher disables pick.logged announcements.
func NewInMemoryModule(capacity int, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(capacity, nil, logger)
	module := NewModule(Dependencies{
		Log:           store,
		Publisher:     publisher,
		IDGenerator:   memory.UUIDGenerator{},
		SourceService: "picklog",
		Logger:        logger,
	})
	module.Store = store
	return module
}
