package content

type Benefit struct {
	Title       string
	Icon        string
	Description string
}

var Benefits = []Benefit{
	{
		Title:       "Many choices",
		Icon:        "stack",
		Description: "Discover a wide range of furniture styles to suit your unique taste and preferences.",
	},
	{
		Title:       "Affordable Prices",
		Icon:        "banknotes",
		Description: "Enjoy quality furniture at pocket-friendly prices that won't break the bank.",
	},
	{
		Title:       "Timely Delivery",
		Icon:        "clock",
		Description: "Rest assured, your furniture will be delivered on time, as promised.",
	},
	{
		Title:       "Quality Assurance",
		Icon:        "badge",
		Description: "Our furniture undergoes quality checks to ensure durability and longevity",
	},
}
