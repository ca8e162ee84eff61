package lms

import (
	"github.com/jonboulle/clockwork"

	"github.com/s/lms/internal/logger"
	"github.com/s/lms/internal/storage"
)

// Service joins the record collections into the shapes the API needs.
// Reads go through storage.Store only; writes go through storage.Writer.
type Service struct {
	log    *logger.Logger
	store  storage.Store
	writer storage.Writer
	clock  clockwork.Clock
	files  Files
}

func NewService(log *logger.Logger, store storage.Store, writer storage.Writer, clock clockwork.Clock, files Files) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		log:    log.With("service", "lms"),
		store:  store,
		writer: writer,
		clock:  clock,
		files:  files,
	}
}
