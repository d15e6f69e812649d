package domain

// seedCategories is the built-in rule taxonomy. It is never handed out
// directly; SeedTaxonomy copies it into a fresh Taxonomy.
var seedCategories = []Category{
	{Name: "Combat", Subcategories: []string{
		"Melee",
		"Ranged",
		"Magic",
		"Aerial Combat",
		"Naval Warfare",
		"Psychological Warfare",
		"Espionage",
	}},
	{Name: "Movement", Subcategories: []string{
		"Charge",
		"Difficult Ground",
		"Forced March",
		"Pursuit",
		"Retreat",
		"Embark & Disembark",
	}},
	{Name: "Units", Subcategories: []string{
		"Infantry",
		"Cavalry",
		"Artillery",
		"Mechanised Units",
		"Beasts & Creatures",
		"Airborne Units",
		"Naval Units",
		"Engineers",
		"Commanders",
		"Special Forces",
	}},
	{Name: "Strategies", Subcategories: []string{
		"Flanking",
		"Ambush",
		"Siege Tactics",
		"Defensive Positions",
		"Hit-and-Run",
		"Guerrilla Warfare",
		"Attrition Warfare",
	}},
	{Name: "Terrain", Subcategories: []string{
		"Urban",
		"Forest",
		"Desert",
		"Mountain",
		"Swamp",
		"Snow & Ice",
		"Underwater",
		"Space Battles",
	}},
	{Name: "Resources", Subcategories: []string{
		"Gold & Currency",
		"Supplies & Ammunition",
		"Manpower",
		"Fuel",
		"Food & Water",
		"Magical Artefacts",
		"Strategic Locations",
	}},
	{Name: "Morale", Subcategories: []string{
		"Leadership Bonuses",
		"Unit Fatigue",
		"Desperation Effects",
		"Loyalty Mechanics",
		"Propaganda & Misinformation",
	}},
}

// SeedTaxonomy returns a fresh copy of the built-in taxonomy.
// Subcategories come back sorted, like any other taxonomy.
func SeedTaxonomy() Taxonomy {
	return NewTaxonomy(seedCategories...)
}
