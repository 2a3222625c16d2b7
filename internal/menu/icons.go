package menu

var icons = map[string]string{
	"dashboard": "⌂",
	"orders":    "▤",
	"invoices":  "≡",
	"personal":  "☺",
	"addresses": "⌖",
	"settings":  "⚙",
}

// Icon resolves an icon key to its glyph. Unknown keys resolve to "".
func Icon(key string) string {
	return icons[key]
}
