package progression

// Storage keys. These names are stable across releases.
const (
	KeyBones        = "total_bones"
	KeyUnlocked     = "unlocked_dogs" // JSON array of pet ids
	KeyEquipped     = "skin_equipped" // JSON object pet id -> skin
	KeyOwnedSkins   = "skins_owned"   // JSON object pet id -> []skin
	KeyFood         = "food_count"
	KeyWater        = "water_count"
	KeyGuessNextAt  = "guess_next_at" // unix milliseconds
	KeyGuessAttempt = "guess_attempts_left"
	KeyGuessDog     = "guess_active_dog"
	KeyGuessCell    = "guess_correct_index"
	KeyGuessPending = "guess_pending_result"
)

// Supply is a consumable bought in the market.
type Supply string

// Supplies.
const (
	Food  Supply = "food"
	Water Supply = "water"
)

// DefaultSupply is the stock a new player starts with.
const DefaultSupply = 5

func (s Supply) key() string {
	if s == Water {
		return KeyWater
	}
	return KeyFood
}
