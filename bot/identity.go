package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/brasas-burger/zapbot/models"
)

// ErrNoPhone means the channel address had no digits to key the customer on.
var ErrNoPhone = errors.New("no phone in channel address")

var (
	nonDigitRe  = regexp.MustCompile(`\D+`)
	nameDeclRe  = regexp.MustCompile(`(?i)(?:meu nome é|meu nome e|sou o|sou a|aqui é o|aqui é a|me chamo)\s+([\p{L} ]{3,})`)
	multiSpaces = regexp.MustCompile(`\s+`)
)

func onlyDigits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// NormalizePhone collapses a channel address to its canonical digits-only
// form. Addresses arrive as "5581999990000@c.us", "+55 81 99999-0000" or raw
// digits; everything from the first "@" on is dropped first.
func NormalizePhone(addr string) string {
	if i := strings.IndexByte(addr, '@'); i >= 0 {
		addr = addr[:i]
	}
	return onlyDigits(addr)
}

// ExtractName pulls a declared name out of free text ("meu nome é João
// Silva", "me chamo Maria"). Returns "" when nothing matches.
func ExtractName(text string) string {
	m := nameDeclRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(multiSpaces.ReplaceAllString(m[1], " "))
	if len([]rune(name)) < 3 {
		return ""
	}
	return TitleCase(name)
}

// TitleCase upper-cases the first rune of each word and lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Resolver maps a raw channel address to a customer record.
type Resolver struct {
	Customers CustomerStore
}

// Resolution is the outcome of one resolve attempt. Exactly one of Customer,
// AskName is meaningful when Err is nil: either the customer is known (maybe
// freshly created, with Greeting set), or registration must be started.
type Resolution struct {
	Phone    string
	Customer *models.Customer
	Greeting string
	AskName  bool
}

// Lookup normalizes the address and fetches the customer, if any. A customer
// miss is reported as models.ErrNotFound, an empty address as ErrNoPhone.
func (r *Resolver) Lookup(ctx context.Context, channelAddr string) (string, models.Customer, error) {
	phone := NormalizePhone(channelAddr)
	if phone == "" {
		return "", models.Customer{}, ErrNoPhone
	}
	c, err := r.Customers.FindByPhone(ctx, phone)
	return phone, c, err
}

// Resolve looks the customer up and, on a miss, tries the single-turn fast
// path: a name declared in the message text, or the channel display name.
// With a usable name the customer is created on the spot; without one the
// caller must drive the registration flow.
func (r *Resolver) Resolve(ctx context.Context, channelAddr, pushName, text string) (Resolution, error) {
	phone, c, err := r.Lookup(ctx, channelAddr)
	if err == nil {
		return Resolution{Phone: phone, Customer: &c}, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return Resolution{Phone: phone}, err
	}

	name := ExtractName(text)
	if name == "" {
		if pn := strings.TrimSpace(pushName); pn != "" {
			name = TitleCase(pn)
		}
	}
	if name == "" {
		return Resolution{Phone: phone, AskName: true}, nil
	}

	created, err := r.Customers.Create(ctx, phone, name, nil, nil)
	if errors.Is(err, models.ErrConflict) {
		// lost a race against another message from the same phone
		if c, lerr := r.Customers.FindByPhone(ctx, phone); lerr == nil {
			return Resolution{Phone: phone, Customer: &c}, nil
		}
	}
	if err != nil {
		return Resolution{Phone: phone}, fmt.Errorf("failed to create customer: %w", err)
	}
	return Resolution{
		Phone:    phone,
		Customer: &created,
		Greeting: fmt.Sprintf("Oi %s! Te cadastrei aqui rapidinho. Bem-vindo!", name),
	}, nil
}
