package content

import (
	"strings"
	"unicode/utf16"
)

type Testimonial struct {
	Review   string
	Rating   int
	Reviewer string
}

var Testimonials = []Testimonial{
	{
		Review:   "Teakwood factory is a good place for any teakwood furniture requirements you have at a reasonable price. We got a swing made by them and it has come out well as per our requirement and within the time frame committed by them. Even the delivery and installation was very professional. I also visited their work shop and was satisfied with the quality of work and the teak used.",
		Rating:   5,
		Reviewer: "Guruprasad V",
	},
	{
		Review:   "They offer teak furnitures and cushioning service. Got a cot of queen size for my room. The quality of the wood is very nice. They have their factory in thalghatpura which can be visited after speaking to the executives. They have standard design available which will be delivered with in a week. If you have a custom design it will be delivered based on the complexity but usually a month. The teak wood used is nilambur teak from kerala, personally liked the quality.",
		Rating:   5,
		Reviewer: "S Namratha",
	},
	{
		Review:   "We got a custom made teak wood dining table through teakwood factory. We are impressed with the workmanship. If you are little flexible with delivery date, you can get best product from Teakwood Factory. A place for authentic teak wood furniture. The picture below will speak for itself. Amazing furniture store. The husband and wife (owners) are very good people to do business with.",
		Rating:   5,
		Reviewer: "George Joseph",
	},
	{
		Review:   "We were in search of a teapoy for our house and wanted something simple without many compartments. This shop offered a variety of tables, allowing us to select the one that suited our preferences. The teak wood table we chose has been a hit with everyone in the family, and guests often inquire about it. Moreover, it was reasonably priced and conveniently delivered to our door. I highly recommend this shop to anyone in search of quality wooden furniture.",
		Rating:   5,
		Reviewer: "Shruthi Karanam",
	},
	{
		Review:   "Good Customer service and their products are absolutely very premium quality and unique designs.also highly recommended for those who are looking for premium Teakwood Furnitures",
		Rating:   5,
		Reviewer: "Sijin jacob",
	},
	{
		Review:   "Got a teakwood sofa from here. Very happy with the decision. Good antique design and nice service. They also allowed us to visit the factory to check for any defects or charges before delivery.",
		Rating:   5,
		Reviewer: "Abhijit Mirajkar",
	},
	{
		Review:   "We had ordered 4+1 +1 along with center table. We got it yesterday. Its beyond our expectations. Fit & Finish is excellent. Mr. Raghavendra were very attentive to our requirements. Few customization were required and they have done it. The sofa & center table has elevated our living hall to next hall. Delighted . Thanks to teakwood team",
		Rating:   5,
		Reviewer: "ramesh pom",
	},
}

// Initials is the avatar text: the first two letters of a single-word
// name, otherwise the first letters of the first and last words.
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		parts = []string{"A"}
	}

	if len(parts) == 1 {
		r := []rune(parts[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	}

	first := []rune(parts[0])[0]
	last := []rune(parts[len(parts)-1])[0]
	return strings.ToUpper(string([]rune{first, last}))
}

// AvatarHues derives the two gradient hues of a reviewer avatar from the
// name. The values match the browser rendering of the same hash, so they
// can be negative.
func AvatarHues(name string) (int, int) {
	var hash int64
	for _, unit := range utf16.Encode([]rune(name)) {
		shifted := int64(int32(uint32(hash)) << 5)
		hash = int64(unit) + shifted - hash
	}
	return int(hash % 360), int((hash + 60) % 360)
}
