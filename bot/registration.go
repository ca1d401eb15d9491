package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/brasas-burger/zapbot/models"
)

type RegistrationPhase int

const (
	AwaitingName RegistrationPhase = iota
	AwaitingTaxID
)

// RegistrationState is the partial record of an in-progress registration,
// keyed by canonical phone. It exists only while no customer exists for that
// phone.
type RegistrationState struct {
	Phase RegistrationPhase
	Name  string
}

// RegistrationStore holds in-progress registrations. The in-memory
// implementation below is the default; a table-backed one can replace it
// without touching the flow.
type RegistrationStore interface {
	Get(phone string) (RegistrationState, bool)
	Set(phone string, st RegistrationState)
	Delete(phone string)
}

type MemRegistrationStore struct {
	mu     sync.Mutex
	states map[string]RegistrationState
}

func NewMemRegistrationStore() *MemRegistrationStore {
	return &MemRegistrationStore{states: make(map[string]RegistrationState)}
}

func (s *MemRegistrationStore) Get(phone string) (RegistrationState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[phone]
	return st, ok
}

func (s *MemRegistrationStore) Set(phone string, st RegistrationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[phone] = st
}

func (s *MemRegistrationStore) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, phone)
}

const (
	askNamePrompt  = "Oi, meu rei! Pra eu te atender melhor, me diga seu nome completo, por favor."
	askTaxIDPrompt = "Prazer, %s! Agora me passa teu CPF (só os números) pra fechar teu cadastro, visse?"
	badTaxIDPrompt = "Eita, esse CPF num pareceu certo não. Me manda os 11 números dele de novo, por favor."
	registeredMsg  = "Pronto, %s! Teu cadastro tá feito. Bora pedir? Manda um 'cardápio' pra ver o que tem!"
)

// Flow is the multi-turn registration state machine (ask name, then ask tax
// id). Phases are strictly sequential per phone; last write wins when the
// same phone races itself.
type Flow struct {
	States    RegistrationStore
	Customers CustomerStore
}

// Begin seeds the flow for a phone with no customer and returns the first
// prompt.
func (f *Flow) Begin(phone string) string {
	f.States.Set(phone, RegistrationState{Phase: AwaitingName})
	return askNamePrompt
}

// Active reports whether a registration is in progress for the phone.
func (f *Flow) Active(phone string) bool {
	_, ok := f.States.Get(phone)
	return ok
}

// Advance feeds one inbound message into the flow. It returns the reply to
// send and, once registration completes or an existing customer is
// recognized mid-flow, the customer record.
func (f *Flow) Advance(ctx context.Context, phone, text string) (string, *models.Customer, error) {
	// A tax id dropped anywhere in free text may identify an existing
	// customer; that abandons the in-progress registration.
	if digits := onlyDigits(text); len(digits) == 11 {
		if c, err := f.Customers.FindByTaxID(ctx, digits); err == nil {
			f.States.Delete(phone)
			return fmt.Sprintf("Achei teu cadastro aqui, %s! Bem-vindo de volta.", c.Name), &c, nil
		} else if !errors.Is(err, models.ErrNotFound) {
			return "", nil, err
		}
	}

	st, ok := f.States.Get(phone)
	if !ok {
		return f.Begin(phone), nil, nil
	}

	switch st.Phase {
	case AwaitingName:
		name := ExtractName(text)
		if name == "" {
			name = TitleCase(strings.TrimSpace(text))
		}
		if name == "" {
			return askNamePrompt, nil, nil
		}
		f.States.Set(phone, RegistrationState{Phase: AwaitingTaxID, Name: name})
		return fmt.Sprintf(askTaxIDPrompt, name), nil, nil

	case AwaitingTaxID:
		digits := onlyDigits(text)
		if len(digits) != 11 {
			return badTaxIDPrompt, nil, nil
		}
		c, err := f.Customers.Create(ctx, phone, st.Name, &digits, nil)
		if errors.Is(err, models.ErrConflict) {
			// the phone got registered through another path meanwhile
			if existing, lerr := f.Customers.FindByPhone(ctx, phone); lerr == nil {
				f.States.Delete(phone)
				return fmt.Sprintf("Achei teu cadastro aqui, %s! Bem-vindo de volta.", existing.Name), &existing, nil
			}
		}
		if err != nil {
			return "", nil, fmt.Errorf("failed to create customer: %w", err)
		}
		f.States.Delete(phone)
		return fmt.Sprintf(registeredMsg, st.Name), &c, nil
	}

	return askNamePrompt, nil, nil
}
