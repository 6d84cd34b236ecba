package models

// TicketSummary represents the totals shown at the bottom of the ticket
type TicketSummary struct {
	Items       int `json:"items"`
	TotalMen    int `json:"total_men"`
	TotalWomen  int `json:"total_women"`
	TotalPeople int `json:"total_people"`
	TotalPrice  int `json:"total_price"`
}

// Summarize aggregates the line items of a ticket
func Summarize(items []TicketItem) TicketSummary {
	summary := TicketSummary{Items: len(items)}
	for _, item := range items {
		summary.TotalMen += item.Men
		summary.TotalWomen += item.Women
		summary.TotalPrice += item.TotalPrice
	}
	summary.TotalPeople = summary.TotalMen + summary.TotalWomen
	return summary
}
