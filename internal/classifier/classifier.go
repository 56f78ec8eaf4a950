
package classifier

import (
	"strings"

	"review-crawler/internal/models"
)

// Category is one row of the categorization table.
type Category struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer assigns the first category, in table order, whose keywords
// appear in a text. Table order decides between overlapping categories.
type Categorizer struct {
	table []Category
}

// New copies table as given. Keywords are compared with the lower-cased
// text, so only lower-case keywords can ever match.
func New(table []Category) *Categorizer {
	t := make([]Category, len(table))
	for i, c := range table {
		t[i] = Category{Label: c.Label, Keywords: append([]string(nil), c.Keywords...)}
	}
	return &Categorizer{table: t}
}

// Categorize matches keywords as plain substrings of the lower-cased text,
// so "tv" also hits inside longer words.
func (c *Categorizer) Categorize(text string) string {
	text = strings.ToLower(text)
	for _, cat := range c.table {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				return cat.Label
			}
		}
	}
	return models.Uncategorized
}

func (c *Categorizer) Labels() []string {
	out := make([]string, len(c.table))
	for i, cat := range c.table {
		out[i] = cat.Label
	}
	return out
}

// DefaultCategories is the product/topic table used for cdiscount reviews.
func DefaultCategories() []Category {
	return []Category{
		{Label: "Textile", Keywords: []string{"jeans", "levis", "vêtements", "tshirt", "pantalon", "robe", "chemise", "pull", "jacket", "manteau", "jupe", "short"}},
		{Label: "Electronics", Keywords: []string{"tv", "laptop", "phone", "tablet", "électroménager", "ordinateur", "caméra", "téléphone", "écouteurs", "haut-parleur", "imprimante"}},
		{Label: "Food", Keywords: []string{"alimentaire", "nourriture", "boisson", "chocolat", "biscuits", "café", "thé", "pâtes", "riz", "gâteau", "bonbon", "sauce", "huile", "épices"}},
		{Label: "Customer Service", Keywords: []string{"service", "clients", "commande", "problème", "remboursement", "réclamation", "satisfaction", "support", "contact"}},
		{Label: "Shipping", Keywords: []string{"livraison", "colis", "expédition", "livré", "retour", "délai", "envoi", "poste", "transporter", "acheminement", "livreur"}},
		{Label: "Marketplace", Keywords: []string{"amazon", "prime", "site", "vente", "produit", "article", "marque", "magasin", "boutique", "commande"}},
	}
}
