package feed

// Category labels match the values published in the competition sheet.
type Category string

const (
	CategoryTech     Category = "資訊科技"
	CategoryBusiness Category = "商業競賽"
	CategoryArt      Category = "藝術設計"
	CategorySocial   Category = "社會實踐"
	CategoryScience  Category = "基礎科學"
	CategoryLanguage Category = "語文文學"
)

type Location string

const (
	LocationOnline  Location = "線上"
	LocationOffline Location = "線下"
	LocationHybrid  Location = "實體/線上混合"
)

// Fallback values substituted for empty fields during normalization.
const (
	FallbackName         = "未命名競賽"
	FallbackOrganizer    = "未知主辦方"
	FallbackPrize        = "詳見官網"
	FallbackDeadline     = "未定"
	FallbackRegistration = "詳見官網"
	DefaultImageURL      = "https://picsum.photos/seed/default/800/400"
)

// Competition is one normalized entry from the feed. IDs are positional
// (1-based over kept rows), so they are not stable across re-ingestions
// when the upstream sheet reorders or removes rows.
type Competition struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Organizer          string   `json:"organizer"`
	Prize              string   `json:"prize"`
	Category           Category `json:"category"`
	Location           Location `json:"location"`
	Deadline           string   `json:"deadline"`
	Summary            string   `json:"summary"`
	Rules              string   `json:"rules"`
	RegistrationMethod string   `json:"registration_method"`
	OfficialLink       string   `json:"official_link"`
	ImageURL           string   `json:"image_url"`
}

func ParseCategory(value string) Category {
	switch Category(value) {
	case CategoryTech, CategoryBusiness, CategoryArt, CategorySocial, CategoryScience, CategoryLanguage:
		return Category(value)
	default:
		return CategoryTech
	}
}

func ParseLocation(value string) Location {
	switch Location(value) {
	case LocationOnline, LocationOffline, LocationHybrid:
		return Location(value)
	default:
		return LocationOnline
	}
}

func Categories() []Category {
	return []Category{CategoryTech, CategoryBusiness, CategoryArt, CategorySocial, CategoryScience, CategoryLanguage}
}

func Locations() []Location {
	return []Location{LocationOnline, LocationOffline, LocationHybrid}
}
