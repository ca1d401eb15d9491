package bot

import (
	"fmt"
	"strings"

	"github.com/brasas-burger/zapbot/models"
)

// FormatPrice renders centavos as "R$ 15.00" using integer math only.
func FormatPrice(cents int64) string {
	return fmt.Sprintf("R$ %d.%02d", cents/100, cents%100)
}

func FormatMenu(items []models.MenuItem) string {
	if len(items) == 0 {
		return "Eita! Num tem nada no cardápio não, visse!"
	}

	var b strings.Builder
	b.WriteString("🍔 *CARDÁPIO DA CASA* 🍔\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "• *%s* - %s\n", item.Name, FormatPrice(item.PriceCents))
	}
	b.WriteString("\n💬 Pra pedir, é só falar: *'Quero um [nome do produto]'*")
	return b.String()
}

func FormatCart(lines []models.CartLine) string {
	if len(lines) == 0 {
		return "Teu carrinho tá vazio ainda, meu rei!"
	}

	var b strings.Builder
	b.WriteString("🛒 *SEU CARRINHO* 🛒\n\n")
	var total int64
	for _, line := range lines {
		fmt.Fprintf(&b, "• %dx *%s* - %s\n", line.Quantity, line.Name, FormatPrice(line.SubtotalCents))
		total += line.SubtotalCents
	}
	fmt.Fprintf(&b, "\n💰 *Total: %s*", FormatPrice(total))
	return b.String()
}
