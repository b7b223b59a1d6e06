package handlers

import (
	"coolrentals/utils"
)

// HandlerBundle groups the endpoint handlers the router wires up.
type HandlerBundle struct {
	// Tokens backs the admin auth gate.
	Tokens utils.TokenStore

	Units       *UnitHandler
	Servicing   *ServicingHandler
	Submissions *SubmissionHandler
	Admin       *AdminHandler
	Storage     *StorageHandler
}
