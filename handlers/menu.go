package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/brasas-burger/zapbot/database"
)

// Admin catalog management. The bot only reads the menu; these routes are
// how the staff writes it.

func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name       string `json:"name"`
		PriceCents int64  `json:"price_cents"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.PriceCents < 0 {
		http.Error(w, "price must not be negative", http.StatusBadRequest)
		return
	}

	var id uuid.UUID
	err := database.Brasas.QueryRow(`
		INSERT INTO menu_items (name, price_cents)
		VALUES ($1, $2)
		RETURNING id
	`, req.Name, req.PriceCents).Scan(&id)
	if err != nil {
		http.Error(w, "failed to create menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":      "menu item created",
		"menu_item_id": id.String(),
	})
}

func SetMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid menu item id", http.StatusBadRequest)
		return
	}

	type request struct {
		IsActive bool `json:"is_active"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res, err := database.Brasas.Exec(`UPDATE menu_items SET is_active = $1 WHERE id = $2`, req.IsActive, itemID)
	if err != nil {
		http.Error(w, "failed to update menu item", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "menu item updated",
		"is_active": req.IsActive,
	})
}

func ListMenuItems(w http.ResponseWriter, r *http.Request) {
	type MenuItem struct {
		ID         uuid.UUID `json:"id"`
		Name       string    `json:"name"`
		PriceCents int64     `json:"price_cents"`
		IsActive   bool      `json:"is_active"`
		CreatedAt  time.Time `json:"created_at"`
	}

	rows, err := database.Brasas.Query(`
		SELECT id, name, price_cents, is_active, created_at
		FROM menu_items
		ORDER BY name ASC
	`)
	if err != nil {
		http.Error(w, "failed to query menu items", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.PriceCents, &m.IsActive, &m.CreatedAt); err != nil {
			http.Error(w, "error reading data", http.StatusInternalServerError)
			return
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		http.Error(w, "error iterating result", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
