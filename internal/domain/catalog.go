package domain

// Region is a home state or union territory.
type Region string

// Language is the preferred chat language.
type Language string

const (
	LanguageHindi   Language = "Hindi"
	LanguageEnglish Language = "English"
)

// Languages lists every supported language.
var Languages = []Language{LanguageHindi, LanguageEnglish}

// Regions lists all 36 states and union territories.
var Regions = []Region{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Delhi", "Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// TagCategories groups the predefined interest tags a profile picks from.
var TagCategories = map[string][]string{
	"Technology & Science": {
		"Artificial Intelligence", "Coding & Dev", "Gadgets & Hardware", "Cybersecurity", "Space & Astronomy",
		"Biotech & Science", "Web3 & Blockchain", "VR & AR", "Data Science", "Robotics",
	},
	"Business & Finance": {
		"Entrepreneurship", "Investing & Stocks", "Crypto & DeFi", "Marketing & Branding", "Personal Finance",
		"Productivity", "Real Estate", "Leadership", "Economics", "Side Hustles",
	},
	"Entertainment & Pop Culture": {
		"Movies", "TV Series", "Anime & Manga", "Gaming (Console/PC)", "Esports",
		"Comics & Graphic Novels", "Board Games & TTRPG", "Comedy", "True Crime", "Celebrity News",
	},
	"Music & Audio": {
		"Pop Music", "Hip Hop & Rap", "Rock & Metal", "EDM & Electronic", "K-Pop",
		"Indie & Alt", "Classical & Jazz", "Music Production", "Podcasts", "Audiobooks",
	},
	"Lifestyle & Hobbies": {
		"Fashion & Style", "Sneaker Culture", "Beauty & Skincare", "Minimalism", "Photography",
		"Cars & Automotive", "Motorcycles", "DIY & Crafting", "Gardening", "Pets & Animals",
	},
	"Health & Wellness": {
		"Fitness & Gym", "Yoga & Pilates", "Mental Health", "Nutrition", "Meditation",
		"Running", "Biohacking", "Martial Arts", "Sustainable Living", "Vegan/Vegetarian",
	},
	"Food & Drink": {
		"Cooking", "Baking", "Fine Dining", "Street Food", "Coffee Culture",
		"Wine & Spirits", "Craft Beer", "Mixology", "Desserts", "Healthy Eating",
	},
	"Sports & Outdoors": {
		"Football (Soccer)", "Basketball", "American Football", "Cricket", "F1 & Motorsport",
		"Tennis", "Hiking & Camping", "Cycling", "Swimming", "Extreme Sports", "Badminton",
		"Volleyball", "Table Tennis", "Water Polo", "Hockey", "Pool", "Golf",
	},
	"Arts, Culture & Thought": {
		"History", "Philosophy", "Psychology", "Literature & Reading", "Writing & Poetry",
		"Art & Design", "Architecture", "Languages", "Politics", "Religion & Spirituality",
	},
	"Social & Travel": {
		"Travel & Backpacking", "Luxury Travel", "Nightlife & Clubbing", "Social Justice", "Environment",
		"Volunteering", "Parenting", "Relationships & Dating", "Education & Learning", "Memes & Internet Culture",
	},
}

var (
	regionSet = func() map[Region]struct{} {
		m := make(map[Region]struct{}, len(Regions))
		for _, r := range Regions {
			m[r] = struct{}{}
		}
		return m
	}()

	tagSet = func() map[string]struct{} {
		m := make(map[string]struct{})
		for _, tags := range TagCategories {
			for _, t := range tags {
				m[t] = struct{}{}
			}
		}
		return m
	}()
)

// IsValid reports whether r is one of the known regions.
func (r Region) IsValid() bool {
	_, ok := regionSet[r]
	return ok
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	return l == LanguageHindi || l == LanguageEnglish
}

// IsKnownTag reports whether tag belongs to the predefined catalogue.
func IsKnownTag(tag string) bool {
	_, ok := tagSet[tag]
	return ok
}
