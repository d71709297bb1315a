package faker

// declaredSchema lists every category/property pair the fallback pack must
// define when the default schema is registered.
var declaredSchema = []struct {
	category   Category
	properties []string
}{
	{CategoryAddress, []string{
		"building_number", "city_name", "city_prefix", "city_suffix", "country",
		"country_code", "county", "direction", "direction_abbr", "postcode",
		"secondary_address", "state", "state_abbr", "street_suffix", "time_zone",
	}},
	{CategoryAnimal, []string{
		"bear", "bird", "cat", "cetacean", "cow", "crocodilia", "dog", "fish",
		"horse", "insect", "lion", "rabbit", "rodent", "snake", "type",
	}},
	{CategoryCommerce, []string{"color", "department", "product_description", "product_name"}},
	{CategoryCompany, []string{
		"adjective", "bs_adjective", "bs_noun", "bs_verb", "descriptor", "noun", "suffix",
	}},
	{CategoryDatabase, []string{"collation", "column", "engine", "type"}},
	{CategoryDate, []string{"month", "weekday"}},
	{CategoryFinance, []string{"account_type", "credit_card", "currency", "transaction_type"}},
	{CategoryHacker, []string{"abbreviation", "adjective", "noun", "verb", "ingverb", "phrase"}},
	{CategoryInternet, []string{"domain_suffix", "example_email", "free_email"}},
	{CategoryLorem, []string{"words"}},
	{CategoryMusic, []string{"genre"}},
	{CategoryName, []string{
		"first_name", "gender", "binary_gender", "last_name", "middle_name",
		"prefix", "suffix", "title",
	}},
	{CategoryPhoneNumber, []string{"formats"}},
	{CategorySystem, []string{"directory_paths", "mime_types"}},
	{CategoryVehicle, []string{"bicycle_type", "fuel", "manufacturer", "model", "type"}},
	{CategoryWord, []string{
		"adjective", "adverb", "conjunction", "interjection", "noun", "preposition", "verb",
	}},
}

// DefaultSchema returns the declared category/property universe. The returned
// map is a fresh copy.
func DefaultSchema() map[Category][]string {
	out := make(map[Category][]string, len(declaredSchema))
	for _, entry := range declaredSchema {
		out[entry.category] = append([]string(nil), entry.properties...)
	}
	return out
}

// DeclaredCategories returns the declared categories in registration order.
func DeclaredCategories() []Category {
	out := make([]Category, len(declaredSchema))
	for i, entry := range declaredSchema {
		out[i] = entry.category
	}
	return out
}

func isDeclaredCategory(category Category) bool {
	for _, entry := range declaredSchema {
		if entry.category == category {
			return true
		}
	}
	return false
}
