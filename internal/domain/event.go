package domain

type Event struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Location      string  `json:"location"`
	Venue         string  `json:"venue"`
	TicketPrice   float64 `json:"ticket_price"`
	TotalCapacity int     `json:"total_capacity"`
	BannerURL     string  `json:"banner_url"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type Artist struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	ImageURL        string `json:"image_url"`
	PerformanceTime string `json:"performance_time"`
	Instruments     string `json:"instruments"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
