package mapping

import "sort"

// canonicalFields maps each canonical catalog field to the input
// column spellings it accepts, checked in order during the exact pass.
// The first accepted spelling found in the input wins.
//
// The odd entries ("Porduct Code") are deliberate: they match typos
// that real vendor sheets ship with.
var canonicalFields = map[string][]string{
	// Core product fields
	"Handle":           {"handle", "product_handle", "product handle"},
	"Title":            {"title", "product_title", "product title", "name", "product_name", "product name"},
	"Body (HTML)":      {"body (html)", "body html", "description", "product_description", "product description", "desc", "body"},
	"Vendor":           {"vendor", "brand", "manufacturer", "supplier"},
	"Product Category": {"product category", "product_category", "category", "product_type"},
	"Type":             {"type", "product_type", "product type"},
	"Tags":             {"tags", "product_tags", "keywords"},
	"Published":        {"published", "status", "active", "publish_status", "publish status"},

	// Option fields
	"Option1 Name":  {"option1 name", "option1_name", "option 1 name"},
	"Option1 Value": {"option1 value", "option1_value", "option 1 value", "size", "sizes"},
	"Option2 Name":  {"option2 name", "option2_name", "option 2 name"},
	"Option2 Value": {"option2 value", "option2_value", "option 2 value", "colour", "color", "colors", "colours"},
	"Option3 Name":  {"option3 name", "option3_name", "option 3 name"},
	"Option3 Value": {"option3 value", "option3_value", "option 3 value"},

	// Variant fields
	"Variant SKU":                 {"variant sku", "variant_sku", "sku", "product_sku", "product sku", "product code", "product_code", "item_code", "item code", "Product code", "Porduct Code"},
	"Variant Grams":               {"variant grams", "variant_grams", "weight_grams", "weight grams"},
	"Variant Inventory Tracker":   {"variant inventory tracker", "variant_inventory_tracker", "inventory tracker", "inventory_tracker"},
	"Variant Inventory Qty":       {"variant inventory qty", "variant_inventory_qty", "inventory qty", "inventory_qty", "quantity", "stock", "stock_quantity"},
	"Variant Inventory Policy":    {"variant inventory policy", "variant_inventory_policy", "inventory policy", "inventory_policy"},
	"Variant Fulfillment Service": {"variant fulfillment service", "variant_fulfillment_service", "fulfillment service", "fulfillment_service"},
	"Variant Price":               {"variant price", "variant_price", "price", "unit_price", "unit price", "cost", "selling_price"},
	"Variant Compare At Price":    {"variant compare at price", "variant_compare_at_price", "compare price", "compare_price", "compare at price", "compare_at_price", "original_price", "original price", "mrp"},
	"Variant Requires Shipping":   {"variant requires shipping", "variant_requires_shipping", "requires shipping", "requires_shipping", "shipping_required"},
	"Variant Taxable":             {"variant taxable", "variant_taxable", "taxable", "tax_applicable"},
	"Variant Barcode":             {"variant barcode", "variant_barcode", "barcode", "upc", "ean"},
	"Variant Image":               {"variant image", "variant_image", "image", "product_image"},
	"Variant Weight Unit":         {"variant weight unit", "variant_weight_unit", "weight unit", "weight_unit"},
	"Variant Weight":              {"variant weight", "variant_weight", "weight"},

	// Image fields
	"Image Src":      {"image src", "image_src", "image url", "image_url", "image", "product_image"},
	"Image Position": {"image position", "image_position"},
	"Image Alt Text": {"image alt text", "image_alt_text", "alt text", "alt_text"},

	// Additional product fields
	"Gift Card":       {"gift card", "gift_card"},
	"SEO Title":       {"seo title", "seo_title", "meta title", "meta_title"},
	"SEO Description": {"seo description", "seo_description", "meta description", "meta_description"},

	// Google Shopping fields
	"Google Shopping / Google Product Category": {"google shopping / google product category", "google product category", "google_product_category"},
	"Google Shopping / Gender":                  {"google shopping / gender", "gender", "target_gender"},
	"Google Shopping / Age Group":               {"google shopping / age group", "age group", "age_group"},
	"Google Shopping / MPN":                     {"google shopping / mpn", "mpn", "manufacturer_part_number"},
	"Google Shopping / AdWords Grouping":        {"google shopping / adwords grouping", "adwords grouping", "adwords_grouping"},
	"Google Shopping / AdWords Labels":          {"google shopping / adwords labels", "adwords labels", "adwords_labels"},
	"Google Shopping / Condition":               {"google shopping / condition", "condition", "product_condition"},
	"Google Shopping / Custom Product":          {"google shopping / custom product", "custom product", "custom_product"},
	"Google Shopping / Custom Label 0":          {"google shopping / custom label 0", "custom label 0", "custom_label_0"},
	"Google Shopping / Custom Label 1":          {"google shopping / custom label 1", "custom label 1", "custom_label_1"},
	"Google Shopping / Custom Label 2":          {"google shopping / custom label 2", "custom label 2", "custom_label_2"},
	"Google Shopping / Custom Label 3":          {"google shopping / custom label 3", "custom label 3", "custom_label_3"},
	"Google Shopping / Custom Label 4":          {"google shopping / custom label 4", "custom label 4", "custom_label_4"},

	// Cost and pricing
	"Cost per item":                    {"cost per item", "cost_per_item", "cost", "wholesale_price", "wholesale price"},
	"Price / International":            {"price / international", "price_international", "international_price"},
	"Compare At Price / International": {"compare at price / international", "compare_at_price_international", "international_compare_price"},
	"Status":                           {"status", "product_status", "active", "draft", "archived"},

	// Merchandising fields carried through into generated descriptions
	"no of components":   {"no of components", "no_of_components", "components", "number_of_components", "component_count"},
	"fabric":             {"fabric", "material", "fabric_type", "fabric type"},
	"celebs name":        {"celebs name", "celebs_name", "celebrity_name", "celebrity name"},
	"fit":                {"fit", "fitting", "size_fit", "size fit"},
	"sizes info":         {"sizes info", "sizes_info", "size_info", "size info"},
	"delivery time":      {"delivery time", "delivery_time", "shipping_time", "shipping time"},
	"wash care":          {"wash care", "wash_care", "care_instructions", "care instructions"},
	"technique used":     {"technique used", "technique_used", "manufacturing_technique"},
	"embroidery details": {"embroidery details", "embroidery_details", "embroidery"},
}

// FieldAliases lists, per canonical field, the mapping keys probed in
// priority order when resolving a row value. The first alias with a
// mapped, non-blank column wins. The lowercase entries are legacy
// field names that the content-sniffing pass may have produced; they
// must stay until no stored mapping uses them.
var FieldAliases = map[string][]string{
	"Title":                    {"Title", "title"},
	"Body (HTML)":              {"Body (HTML)", "description"},
	"Option1 Value":            {"Option1 Value", "size"},
	"Option2 Value":            {"Option2 Value", "colour"},
	"Variant SKU":              {"Variant SKU", "product code"},
	"Variant Price":            {"Variant Price", "variant price"},
	"Variant Compare At Price": {"Variant Compare At Price", "variant compare at price"},
	"Published":                {"Published", "published"},
	"Product Category":         {"Product Category", "product category"},
	"Type":                     {"Type", "type"},
}

// Fields returns the canonical field names in deterministic order.
func Fields() []string {
	out := make([]string, 0, len(canonicalFields))
	for f := range canonicalFields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
