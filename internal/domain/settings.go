package domain

// Settings is the lot's configuration record, shown on reports and in the
// assistant's welcome message.
type Settings struct {
	LotName string `json:"lot_name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type SettingsDTO struct {
	LotName string `json:"lot_name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
