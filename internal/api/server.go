package api

import "github.com/RoyceAzure/lab/pos/internal/api/handler"

type Server struct {
	AuthHandler     *handler.AuthHandler
	CatalogHandler  *handler.CatalogHandler
	ContactHandler  *handler.ContactHandler
	TerminalHandler *handler.TerminalHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	contactHandler *handler.ContactHandler,
	terminalHandler *handler.TerminalHandler,
) *Server {
	return &Server{
		AuthHandler:     authHandler,
		CatalogHandler:  catalogHandler,
		ContactHandler:  contactHandler,
		TerminalHandler: terminalHandler,
	}
}
