package llm

import (
	"fmt"
	"strings"
)

// BuildCategoryPrompt renders the categorization prompt for one
// transaction. The allowed categories are listed explicitly so the model's
// answer space is closed.
func BuildCategoryPrompt(description string, amount float64, categories []string) string {
	var b strings.Builder

	b.WriteString("You are analyzing credit-card transactions. Assign EXACTLY one category to the transaction below.\n\n")

	b.WriteString("Allowed categories (choose EXACTLY one):\n")
	for _, cat := range categories {
		b.WriteString("- " + cat + "\n")
	}

	b.WriteString(`
Category Rules:
- Use the merchant name and context from the description more than the amount.
- Gas stations / fuel purchases -> Transport
- Groceries / supermarkets -> Grocery
- Restaurants/cafes/fast-food/delivery -> Food
- Movies/events/games/amusement -> Entertainment
- Rent/lease -> Rent
- Power/water/internet/phone bills -> Utilities
- Shopping/retail/e-commerce (clothes, electronics, home goods) -> Shopping
- Health insurance, pharmacy, medical bills, clinics -> Health
- Streaming/music/cloud/app subscriptions -> Digital Services
- If unsure -> Others

Examples:
Description: AplPay KROGER #339 000000339 INDIANAPOLIS IN 3175798309
Category: Grocery

Description: NETFLIX.COM 1-866-579-7172 CA
Category: Digital Services

Description: AplPay SPEEDWAY 1-800-643-1949 OH 3176304925
Category: Transport

Answer with the category name only: no JSON, no quotes, no explanation.

`)

	fmt.Fprintf(&b, "Description: %s\nAmount: %.2f\n\nCategory:", description, amount)

	return b.String()
}
