package classify

import "slices"

// TypeKey identifies an entry of the wine-type table.
type TypeKey string

// Wine-type keys.
const (
	RedLight      TypeKey = "RED_LIGHT"
	RedMedium     TypeKey = "RED_MEDIUM"
	RedFull       TypeKey = "RED_FULL"
	WhiteCrisp    TypeKey = "WHITE_CRISP"
	WhiteRich     TypeKey = "WHITE_RICH"
	WhiteAromatic TypeKey = "WHITE_AROMATIC"
	SparklingType TypeKey = "SPARKLING"
	RoseType      TypeKey = "ROSE"
	DessertType   TypeKey = "DESSERT"
	FortifiedType TypeKey = "FORTIFIED"
)

// PowerKey identifies an entry of the power-level table.
type PowerKey string

// Power-level keys, weakest first.
const (
	PowerEveryday  PowerKey = "EVERYDAY"
	PowerQuality   PowerKey = "QUALITY"
	PowerPremium   PowerKey = "PREMIUM"
	PowerLegendary PowerKey = "LEGENDARY"
)

// RarityKey identifies an entry of the rarity table.
type RarityKey string

// Rarity keys, most common first.
const (
	RarityCommon    RarityKey = "COMMON"
	RarityUncommon  RarityKey = "UNCOMMON"
	RarityRare      RarityKey = "RARE"
	RarityEpic      RarityKey = "EPIC"
	RarityLegendary RarityKey = "LEGENDARY"
)

// RegionKey identifies an entry of the region table.
type RegionKey string

// Region keys.
const (
	France     RegionKey = "FRANCE"
	Italy      RegionKey = "ITALY"
	Spain      RegionKey = "SPAIN"
	Germany    RegionKey = "GERMANY"
	California RegionKey = "CALIFORNIA"
	Australia  RegionKey = "AUSTRALIA"
	Chile      RegionKey = "CHILE"
	Argentina  RegionKey = "ARGENTINA"
)

// World tags for the region table.
const (
	OldWorld = "Old World"
	NewWorld = "New World"
)

// TypeInfo describes a wine-type category.
type TypeInfo struct {
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// PowerInfo describes a power tier. Range holds the inclusive rating bounds.
type PowerInfo struct {
	Name        string `json:"name"`
	Range       [2]int `json:"range"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// RarityInfo describes a rarity tier. Probability is a percentage weight.
type RarityInfo struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Color       string  `json:"color"`
	Border      string  `json:"border"`
	Glow        string  `json:"glow"`
	Description string  `json:"description"`
}

// RegionInfo describes a wine-producing country.
type RegionInfo struct {
	Name        string   `json:"name"`
	Flag        string   `json:"flag"`
	Type        string   `json:"type"`
	Color       string   `json:"color"`
	Specialties []string `json:"specialties"`
}

// Table order for each reference table.
var (
	TypeKeys   = []TypeKey{RedLight, RedMedium, RedFull, WhiteCrisp, WhiteRich, WhiteAromatic, SparklingType, RoseType, DessertType, FortifiedType}
	PowerKeys  = []PowerKey{PowerEveryday, PowerQuality, PowerPremium, PowerLegendary}
	RarityKeys = []RarityKey{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
	RegionKeys = []RegionKey{France, Italy, Spain, Germany, California, Australia, Chile, Argentina}
)

//nolint:gochecknoglobals // static reference table
var wineTypes = map[TypeKey]TypeInfo{
	RedLight: {
		Name:        "Light Red",
		Color:       "#FF6B7D",
		Icon:        "🍒",
		Description: "Light-bodied red wines with bright acidity",
		Examples:    []string{"Pinot Noir", "Beaujolais", "Dolcetto"},
	},
	RedMedium: {
		Name:        "Medium Red",
		Color:       "#DC2626",
		Icon:        "🍷",
		Description: "Medium-bodied reds with balanced tannins",
		Examples:    []string{"Merlot", "Sangiovese", "Tempranillo"},
	},
	RedFull: {
		Name:        "Full Red",
		Color:       "#7F1D1D",
		Icon:        "🥀",
		Description: "Full-bodied reds with bold tannins and structure",
		Examples:    []string{"Cabernet Sauvignon", "Syrah", "Malbec"},
	},
	WhiteCrisp: {
		Name:        "Crisp White",
		Color:       "#FBBF24",
		Icon:        "🍋",
		Description: "Light, crisp whites with high acidity",
		Examples:    []string{"Sauvignon Blanc", "Albariño", "Vinho Verde"},
	},
	WhiteRich: {
		Name:        "Rich White",
		Color:       "#F59E0B",
		Icon:        "🧈",
		Description: "Full-bodied whites with creamy texture",
		Examples:    []string{"Chardonnay", "Viognier", "White Rioja"},
	},
	WhiteAromatic: {
		Name:        "Aromatic White",
		Color:       "#FDE047",
		Icon:        "🌸",
		Description: "Highly aromatic whites with floral notes",
		Examples:    []string{"Riesling", "Gewürztraminer", "Moscato"},
	},
	SparklingType: {
		Name:        "Sparkling",
		Color:       "#E5E7EB",
		Icon:        "🥂",
		Description: "Wines with natural or added carbonation",
		Examples:    []string{"Champagne", "Prosecco", "Cava"},
	},
	RoseType: {
		Name:        "Rosé",
		Color:       "#F9A8D4",
		Icon:        "🌹",
		Description: "Pink wines with fresh, fruity character",
		Examples:    []string{"Provence Rosé", "Rosado", "White Zinfandel"},
	},
	DessertType: {
		Name:        "Dessert",
		Color:       "#A855F7",
		Icon:        "🍯",
		Description: "Sweet wines perfect for dessert",
		Examples:    []string{"Port", "Sauternes", "Ice Wine"},
	},
	FortifiedType: {
		Name:        "Fortified",
		Color:       "#92400E",
		Icon:        "🛡️",
		Description: "Wines strengthened with additional alcohol",
		Examples:    []string{"Sherry", "Madeira", "Vermouth"},
	},
}

//nolint:gochecknoglobals // static reference table
var powerLevels = map[PowerKey]PowerInfo{
	PowerEveryday: {
		Name:        "Everyday Drinker",
		Range:       [2]int{1, 2},
		Color:       "#9CA3AF",
		Description: "Simple, approachable wines for daily enjoyment",
	},
	PowerQuality: {
		Name:        "Quality Wine",
		Range:       [2]int{3, 3},
		Color:       "#3B82F6",
		Description: "Well-made wines with good character",
	},
	PowerPremium: {
		Name:        "Premium Wine",
		Range:       [2]int{4, 4},
		Color:       "#7C3AED",
		Description: "High-quality wines from renowned producers",
	},
	PowerLegendary: {
		Name:        "Legendary Wine",
		Range:       [2]int{5, 5},
		Color:       "#F59E0B",
		Description: "Exceptional wines of legendary status",
	},
}

//nolint:gochecknoglobals // static reference table
var rarities = map[RarityKey]RarityInfo{
	RarityCommon: {
		Name:        "Common",
		Probability: 70,
		Color:       "#9CA3AF",
		Border:      "border-gray-400",
		Glow:        "",
		Description: "Widely available wines under $25",
	},
	RarityUncommon: {
		Name:        "Uncommon",
		Probability: 20,
		Color:       "#22C55E",
		Border:      "border-green-400",
		Glow:        "shadow-green-400/50",
		Description: "Quality wines $25-50",
	},
	RarityRare: {
		Name:        "Rare",
		Probability: 7,
		Color:       "#3B82F6",
		Border:      "border-blue-400",
		Glow:        "shadow-blue-400/50",
		Description: "Special wines $50-100",
	},
	RarityEpic: {
		Name:        "Epic",
		Probability: 2.5,
		Color:       "#A855F7",
		Border:      "border-purple-400",
		Glow:        "shadow-purple-400/50",
		Description: "Premium wines $100-300",
	},
	RarityLegendary: {
		Name:        "Legendary",
		Probability: 0.5,
		Color:       "#F59E0B",
		Border:      "border-yellow-400",
		Glow:        "shadow-yellow-400/75 shadow-lg",
		Description: "Ultra-rare wines $300+",
	},
}

//nolint:gochecknoglobals // static reference table
var regions = map[RegionKey]RegionInfo{
	France: {
		Name:        "France",
		Flag:        "🇫🇷",
		Type:        OldWorld,
		Color:       "#1E40AF",
		Specialties: []string{"Burgundy", "Bordeaux", "Champagne", "Rhône"},
	},
	Italy: {
		Name:        "Italy",
		Flag:        "🇮🇹",
		Type:        OldWorld,
		Color:       "#DC2626",
		Specialties: []string{"Tuscany", "Piedmont", "Veneto", "Sicily"},
	},
	Spain: {
		Name:        "Spain",
		Flag:        "🇪🇸",
		Type:        OldWorld,
		Color:       "#EA580C",
		Specialties: []string{"Rioja", "Ribera del Duero", "Rías Baixas"},
	},
	Germany: {
		Name:        "Germany",
		Flag:        "🇩🇪",
		Type:        OldWorld,
		Color:       "#1F2937",
		Specialties: []string{"Mosel", "Rheingau", "Pfalz"},
	},
	California: {
		Name:        "California",
		Flag:        "🏖️",
		Type:        NewWorld,
		Color:       "#FBBF24",
		Specialties: []string{"Napa Valley", "Sonoma", "Central Coast"},
	},
	Australia: {
		Name:        "Australia",
		Flag:        "🇦🇺",
		Type:        NewWorld,
		Color:       "#16A34A",
		Specialties: []string{"Barossa Valley", "Hunter Valley", "Adelaide Hills"},
	},
	Chile: {
		Name:        "Chile",
		Flag:        "🇨🇱",
		Type:        NewWorld,
		Color:       "#7C2D12",
		Specialties: []string{"Maipo Valley", "Casablanca Valley", "Colchagua"},
	},
	Argentina: {
		Name:        "Argentina",
		Flag:        "🇦🇷",
		Type:        NewWorld,
		Color:       "#7C3AED",
		Specialties: []string{"Mendoza", "Salta", "San Juan"},
	},
}

// Type returns the table entry for key. Unknown keys resolve to WHITE_CRISP,
// the engine's default category.
func Type(key TypeKey) TypeInfo {
	info, ok := wineTypes[key]
	if !ok {
		info = wineTypes[WhiteCrisp]
	}
	info.Examples = slices.Clone(info.Examples)
	return info
}

// Power returns the table entry for key, EVERYDAY when unknown.
func Power(key PowerKey) PowerInfo {
	info, ok := powerLevels[key]
	if !ok {
		return powerLevels[PowerEveryday]
	}
	return info
}

// Rarity returns the table entry for key, COMMON when unknown.
func Rarity(key RarityKey) RarityInfo {
	info, ok := rarities[key]
	if !ok {
		return rarities[RarityCommon]
	}
	return info
}

// Region returns the table entry for key.
func Region(key RegionKey) (RegionInfo, bool) {
	info, ok := regions[key]
	if !ok {
		return RegionInfo{}, false
	}
	info.Specialties = slices.Clone(info.Specialties)
	return info, true
}

// Tier returns the position of key in RarityKeys, or -1 when unknown.
func (k RarityKey) Tier() int {
	return slices.Index(RarityKeys, k)
}

// Tier returns the position of key in PowerKeys, or -1 when unknown.
func (k PowerKey) Tier() int {
	return slices.Index(PowerKeys, k)
}

// Reference bundles every table in table order.
type Reference struct {
	Types       []KeyedType   `json:"types"`
	PowerLevels []KeyedPower  `json:"powerLevels"`
	Rarities    []KeyedRarity `json:"rarities"`
	Regions     []KeyedRegion `json:"regions"`
}

// KeyedType pairs a type key with its entry.
type KeyedType struct {
	Key TypeKey `json:"key"`
	TypeInfo
}

// KeyedPower pairs a power key with its entry.
type KeyedPower struct {
	Key PowerKey `json:"key"`
	PowerInfo
}

// KeyedRarity pairs a rarity key with its entry.
type KeyedRarity struct {
	Key RarityKey `json:"key"`
	RarityInfo
}

// KeyedRegion pairs a region key with its entry.
type KeyedRegion struct {
	Key RegionKey `json:"key"`
	RegionInfo
}

// Tables returns a copy of all reference tables.
func Tables() Reference {
	ref := Reference{
		Types:       make([]KeyedType, 0, len(TypeKeys)),
		PowerLevels: make([]KeyedPower, 0, len(PowerKeys)),
		Rarities:    make([]KeyedRarity, 0, len(RarityKeys)),
		Regions:     make([]KeyedRegion, 0, len(RegionKeys)),
	}
	for _, k := range TypeKeys {
		ref.Types = append(ref.Types, KeyedType{Key: k, TypeInfo: Type(k)})
	}
	for _, k := range PowerKeys {
		ref.PowerLevels = append(ref.PowerLevels, KeyedPower{Key: k, PowerInfo: Power(k)})
	}
	for _, k := range RarityKeys {
		ref.Rarities = append(ref.Rarities, KeyedRarity{Key: k, RarityInfo: Rarity(k)})
	}
	for _, k := range RegionKeys {
		info, _ := Region(k)
		ref.Regions = append(ref.Regions, KeyedRegion{Key: k, RegionInfo: info})
	}
	return ref
}
