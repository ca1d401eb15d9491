package dbhelper

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brasas-burger/zapbot/database"
)

func CreateStaff(tx *sql.Tx, name, email, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`INSERT INTO staff (name, email, password) VALUES ($1, $2, $3) RETURNING id`,
		name, email, hashedPassword).Scan(&id)
	return id, err
}

func IsStaffExists(email string) (bool, error) {
	var count int
	err := database.Brasas.QueryRow(`SELECT COUNT(*) FROM staff WHERE LOWER(email) = LOWER($1)`, email).Scan(&count)
	return count > 0, err
}

func GetStaffByPassword(email, password string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var name string
	var hashedPassword string

	err := database.Brasas.QueryRow(`
		SELECT id, name, password FROM staff
		WHERE LOWER(email) = LOWER($1)`, email).
		Scan(&id, &name, &hashedPassword)
	if err != nil {
		return uuid.Nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil {
		return uuid.Nil, "", fmt.Errorf("incorrect password")
	}

	return id, name, nil
}
