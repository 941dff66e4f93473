// Package shopify shapes exploded variant rows into the fixed catalog
// import schema and serializes the result.
//
// The column list is the import format's contract: every column must
// be present in every emitted row, in exactly this order. Primary rows
// (the first row of a product group) carry the product-level fields;
// subordinate rows leave them blank and carry only the variant-level
// ones.
package shopify

// Columns is the fixed, ordered output schema.
var Columns = []string{
	"Handle", "Title", "Body (HTML)", "Vendor", "Product Category", "Type", "Tags", "Published",
	"Option1 Name", "Option1 Value", "Option1 Linked To",
	"Option2 Name", "Option2 Value", "Option2 Linked To",
	"Option3 Name", "Option3 Value", "Option3 Linked To",
	"Variant SKU", "Variant Grams", "Variant Inventory Tracker", "Variant Inventory Qty",
	"Variant Inventory Policy", "Variant Fulfillment Service", "Variant Price", "Variant Compare At Price",
	"Variant Requires Shipping", "Variant Taxable",
	"Unit Price Total Measure", "Unit Price Total Measure Unit",
	"Unit Price Base Measure", "Unit Price Base Measure Unit",
	"Variant Barcode",
	"Image Src", "Image Position", "Image Alt Text", "Gift Card",
	"SEO Title", "SEO Description",
	"Google Shopping / Google Product Category", "Google Shopping / Gender", "Google Shopping / Age Group",
	"Google Shopping / MPN", "Google Shopping / Condition", "Google Shopping / Custom Product",
	"Google Shopping / Custom Label 0", "Google Shopping / Custom Label 1", "Google Shopping / Custom Label 2",
	"Google Shopping / Custom Label 3", "Google Shopping / Custom Label 4",
	"Gender (product.metafields.custom.gender)",
	"Google: Custom Product (product.metafields.mm-google-shopping.custom_product)",
	"Age group (product.metafields.shopify.age-group)",
	"Color (product.metafields.shopify.color-pattern)",
	"Dress occasion (product.metafields.shopify.dress-occasion)",
	"Dress style (product.metafields.shopify.dress-style)",
	"Fabric (product.metafields.shopify.fabric)",
	"Neckline (product.metafields.shopify.neckline)",
	"Size (product.metafields.shopify.size)",
	"Skirt/Dress length type (product.metafields.shopify.skirt-dress-length-type)",
	"Sleeve length type (product.metafields.shopify.sleeve-length-type)",
	"Target gender (product.metafields.shopify.target-gender)",
	"Complementary products (product.metafields.shopify--discovery--product_recommendation.complementary_products)",
	"Related products (product.metafields.shopify--discovery--product_recommendation.related_products)",
	"Related products settings (product.metafields.shopify--discovery--product_recommendation.related_products_display)",
	"Search product boosts (product.metafields.shopify--discovery--product_search_boost.queries)",
	"Variant Image", "Variant Weight Unit", "Variant Tax Code", "Cost per item", "Status",
}

// numericColumns default to "0" instead of blank.
var numericColumns = map[string]struct{}{
	"Variant Grams": {},
	"Cost per item": {},
}

// blankRow returns a row with every schema column present, defaulted
// to empty string ("0" for the known-numeric columns).
func blankRow() map[string]string {
	row := make(map[string]string, len(Columns))
	for _, col := range Columns {
		if _, num := numericColumns[col]; num {
			row[col] = "0"
		} else {
			row[col] = ""
		}
	}
	return row
}
