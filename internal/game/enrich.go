package game

// EnrichBeast resolves content lookups for a raw beast. It is kept apart from
// wire decoding so the decoder stays schema-only.
func EnrichBeast(b Beast) BeastView {
	v := BeastView{
		ID:            b.ID,
		Seed:          b.Seed,
		Health:        b.Health,
		Level:         b.Level,
		Specials:      b.Specials,
		IsCollectable: b.IsCollectable,
		Name:          BeastName(b.ID),
		Tier:          BeastTier(b.ID),
		Type:          BeastType(b.ID),
	}

	if b.Level < SpecialNameUnlockLevel {
		return v
	}
	if prefix, ok := SpecialPrefix(b.Specials.Special2); ok {
		v.SpecialPrefix = &prefix
	}
	if suffix, ok := SpecialSuffix(b.Specials.Special3); ok {
		v.SpecialSuffix = &suffix
	}
	return v
}

// FullName renders "Prefix Suffix Name" when special names are shown.
func (v BeastView) FullName() string {
	if v.SpecialPrefix == nil || v.SpecialSuffix == nil {
		return v.Name
	}
	return "\"" + *v.SpecialPrefix + " " + *v.SpecialSuffix + "\" " + v.Name
}
