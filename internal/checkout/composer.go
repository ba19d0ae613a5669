package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/contactlearncert-blip/dianda-store/internal/cart"
	"github.com/contactlearncert-blip/dianda-store/internal/catalog"
	pkgerrors "github.com/contactlearncert-blip/dianda-store/pkg/errors"
)

const (
	separator   = "━━━━━━━━━━━━━━━━━━━━━"
	closingLine = "Merci de confirmer ma commande ! 🙏"
	timeLayout  = "02/01/2006 15:04"
)

// ProductLookup resolves cart line ids back to catalog products for image
// resolution. Lines may dangle if the catalog changed since the add.
type ProductLookup interface {
	FindByID(id int) (catalog.Product, bool)
}

// Options carries the fixed store identity embedded in every order message.
type Options struct {
	StoreName        string
	WhatsAppNumber   string
	DialPrefix       string
	Location         string
	BaseURL          string
	PlaceholderImage string
}

// Order is a composed checkout handoff: the human-readable message and the
// deep link that opens it in the external messaging channel.
type Order struct {
	Message     string `json:"message"`
	URL         string `json:"url"`
	TotalAmount int    `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
}

// Compose deterministically renders the cart into an order message and a
// wa.me deep link. Identical inputs produce byte-identical output; the only
// error path is an empty cart.
func Compose(lines []cart.Line, products ProductLookup, opts Options, now time.Time) (Order, error) {
	if len(lines) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "le panier est vide")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛍️ *NOUVELLE COMMANDE %s*\n\n", opts.StoreName)

	total := 0
	count := 0
	for _, line := range lines {
		subtotal := line.Subtotal()
		total += subtotal
		count += line.Quantity

		fmt.Fprintf(&b, "📦 *%s*\n", line.Name)
		fmt.Fprintf(&b, "   Quantité: %d\n", line.Quantity)
		fmt.Fprintf(&b, "   Prix unitaire: %s FCFA\n", FormatAmount(line.Price))
		fmt.Fprintf(&b, "   Sous-total: %s FCFA\n", FormatAmount(subtotal))
		fmt.Fprintf(&b, "   📸 *Image:* %s\n\n", resolveImage(line.ID, products, opts))
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s FCFA*\n", FormatAmount(total))
	b.WriteString(separator + "\n\n")

	fmt.Fprintf(&b, "📞 *Téléphone:* %s %s\n", opts.DialPrefix, opts.WhatsAppNumber)
	fmt.Fprintf(&b, "📍 *Boutique:* %s\n\n", opts.Location)
	fmt.Fprintf(&b, "🕐 *Commande passée le:* %s\n\n", now.Format(timeLayout))
	b.WriteString(closingLine)

	message := b.String()
	return Order{
		Message:     message,
		URL:         DeepLink(opts.WhatsAppNumber, message),
		TotalAmount: total,
		ItemCount:   count,
	}, nil
}

// ComposeSimple renders the short bullet-list order variant used by the
// prefill endpoint, without images or timestamps.
func ComposeSimple(lines []cart.Line, storeName, whatsappNumber string) (Order, error) {
	if len(lines) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "le panier est vide")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s, je souhaite commander :\n\n", storeName)

	total := 0
	count := 0
	for _, line := range lines {
		subtotal := line.Subtotal()
		total += subtotal
		count += line.Quantity
		fmt.Fprintf(&b, "• %s x%d = %d FCFA\n", line.Name, line.Quantity, subtotal)
	}

	fmt.Fprintf(&b, "\n💰 TOTAL: %d FCFA", total)
	fmt.Fprintf(&b, "\n\n📞 %s", whatsappNumber)

	message := b.String()
	return Order{
		Message:     message,
		URL:         DeepLink(whatsappNumber, message),
		TotalAmount: total,
		ItemCount:   count,
	}, nil
}

// DeepLink builds the messaging handoff URL for a prepared message.
func DeepLink(whatsappNumber, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", whatsappNumber, encodeComponent(message))
}

func resolveImage(productID int, products ProductLookup, opts Options) string {
	image := opts.PlaceholderImage
	if products != nil {
		if p, ok := products.FindByID(productID); ok && strings.TrimSpace(p.Image) != "" {
			image = p.Image
		}
	}
	return NormalizeImageURL(image, opts.BaseURL)
}
