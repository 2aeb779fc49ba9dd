package httpserver

import (
	"net/http"

	"savora-storefront/internal/logger"
	"savora-storefront/internal/platform"
	"savora-storefront/internal/utils"

	"go.uber.org/zap"
)

// Catalog reads degrade instead of failing: a platform outage yields an empty
// list plus a message, so the storefront still renders.

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	items, err := s.platform.Menu(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("menu fetch failed", zap.Error(err))
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"items":   []platform.MenuItem{},
			"message": "the menu is unavailable right now",
		})
		return
	}
	if items == nil {
		items = []platform.MenuItem{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := s.platform.ListBranches(r.Context())
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"branches": []platform.Branch{},
			"message":  "branches are unavailable right now",
		})
		return
	}
	if branches == nil {
		branches = []platform.Branch{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"branches": branches})
}
