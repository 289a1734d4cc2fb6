package abi

// CoreOptionValue mirrors struct retro_core_option_value.
type CoreOptionValue struct {
	Value *byte
	Label *byte
}

// CoreOptionDefinition mirrors struct retro_core_option_definition.
type CoreOptionDefinition struct {
	Key          *byte
	Desc         *byte
	Info         *byte
	Values       [NumCoreOptionValuesMax]CoreOptionValue
	DefaultValue *byte
}

// CoreOptionsIntl mirrors struct retro_core_options_intl.
type CoreOptionsIntl struct {
	US    *CoreOptionDefinition
	Local *CoreOptionDefinition
}

// CoreOptionV2Category mirrors struct retro_core_option_v2_category.
type CoreOptionV2Category struct {
	Key  *byte
	Desc *byte
	Info *byte
}

// CoreOptionV2Definition mirrors struct retro_core_option_v2_definition.
type CoreOptionV2Definition struct {
	Key             *byte
	Desc            *byte
	DescCategorized *byte
	Info            *byte
	InfoCategorized *byte
	CategoryKey     *byte
	Values          [NumCoreOptionValuesMax]CoreOptionValue
	DefaultValue    *byte
}

// CoreOptionsV2 mirrors struct retro_core_options_v2.
type CoreOptionsV2 struct {
	Categories  *CoreOptionV2Category
	Definitions *CoreOptionV2Definition
}

// CoreOptionsV2Intl mirrors struct retro_core_options_v2_intl.
type CoreOptionsV2Intl struct {
	US    *CoreOptionsV2
	Local *CoreOptionsV2
}

// CoreOptionDisplay mirrors struct retro_core_option_display.
type CoreOptionDisplay struct {
	Key     *byte
	Visible bool
}
