package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/brasas-burger/zapbot/bot"
	"github.com/brasas-burger/zapbot/database/dbhelper"
)

// Webhook receives UltraMsg events and drives the bot orchestrator. The
// response body echoes the outcome status so operators can tell ignored,
// decision-failed and delivery-failed events apart.
func Webhook(orc *bot.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev bot.Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			logrus.WithError(err).Error("failed to decode webhook payload")
			writeOutcome(w, bot.Outcome{Status: bot.StatusError, Detail: "invalid payload"})
			return
		}

		out := orc.Handle(r.Context(), ev)
		writeOutcome(w, out)
	}
}

func writeOutcome(w http.ResponseWriter, out bot.Outcome) {
	w.Header().Set("Content-Type", "application/json")
	// webhook providers retry on non-2xx; even failed events are acknowledged
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(out)
}

// TestDB is a diagnostic endpoint: counts active menu items to prove the
// database connection works end to end.
func TestDB(w http.ResponseWriter, r *http.Request) {
	count, err := dbhelper.CountActiveMenuItems(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		logrus.WithError(err).Error("database test failed")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":     "ok",
		"menu_count": count,
	})
}
