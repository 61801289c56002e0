package service

import (
	"github.com/gridboard/mobile-core/internal/adapter"
	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/internal/store"
)

// ClientServices groups the client-side services handed to the application
// layer. Currently the session manager is the only one.
type ClientServices struct {
	Session SessionService
}

// NewClientServices wires the service layer to the storage, transport and
// connectivity dependencies.
func NewClientServices(localStore *store.ClientStorages, gateway adapter.BackendGateway, connectivity ConnectivitySource, log *logger.Logger) *ClientServices {
	return &ClientServices{
		Session: NewSessionService(localStore, gateway, connectivity, log),
	}
}
