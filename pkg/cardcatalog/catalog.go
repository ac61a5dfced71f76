// Package cardcatalog sabit kartvizit şablonu kayıt defterini ve şablonların HTML çıktısını sağlar.
package cardcatalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"sort"

	"vcard.link/models"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// ErrUnknownTemplate kayıtlı olmayan bir şablon kimliği istendiğinde döner.
var ErrUnknownTemplate = errors.New("cardcatalog: unknown template")

type Category string

const (
	CategoryBasic    Category = "basic"
	CategoryStandard Category = "standard"
	CategoryPremium  Category = "premium"
)

// Valid bilinen bir kategori mi?
func (c Category) Valid() bool {
	switch c {
	case CategoryBasic, CategoryStandard, CategoryPremium:
		return true
	}
	return false
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultDimensions 3.5" x 2" kartın 300 DPI karşılığı.
var DefaultDimensions = Dimensions{Width: 1050, Height: 600}

func (d Dimensions) orDefault() Dimensions {
	if d.Width <= 0 || d.Height <= 0 {
		return DefaultDimensions
	}
	return d
}

// Descriptor şablonun değişmez tanımı. View, gömülü views altındaki şablon adıdır.
type Descriptor struct {
	ID       int
	Category Category
	Label    string
	View     string
}

// Entry şablonun istemciye açılan katalog kaydı.
type Entry struct {
	ID       int      `json:"id"`
	Category Category `json:"category"`
	Label    string   `json:"label"`
}

type RenderOptions struct {
	SelectionDisabled bool // paylaşılan görünümde şablon seçimi kapalı
}

// cardView şablonlara geçen bağlamdır.
type cardView struct {
	TemplateID        int
	Label             string
	Category          Category
	Card              models.CardProfile
	Social            []socialLink
	Width             int
	Height            int
	SelectionDisabled bool
}

type socialLink struct {
	Key string
	URL string
}

// Builtin varsayılan altı şablon.
var Builtin = []Descriptor{
	{ID: 1, Category: CategoryBasic, Label: "Classic", View: "cards/classic"},
	{ID: 2, Category: CategoryBasic, Label: "Minimal", View: "cards/minimal"},
	{ID: 3, Category: CategoryStandard, Label: "Corporate", View: "cards/corporate"},
	{ID: 4, Category: CategoryStandard, Label: "Modern", View: "cards/modern"},
	{ID: 5, Category: CategoryPremium, Label: "Executive", View: "cards/executive"},
	{ID: 6, Category: CategoryPremium, Label: "Elegant", View: "cards/elegant"},
}

// Catalog süreç başında kurulur ve sonra değişmez; eşzamanlı okumaya uygundur.
type Catalog struct {
	descriptors map[int]Descriptor
	ids         []int
	engine      *html.Engine
}

// New gömülü görünümlerle yerleşik kataloğu oluşturur.
func New() (*Catalog, error) {
	return NewWithDescriptors(Builtin...)
}

// NewWithDescriptors verilen tanımlarla katalog oluşturur. Kimlikler pozitif ve benzersiz olmalı.
func NewWithDescriptors(descriptors ...Descriptor) (*Catalog, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("cardcatalog: görünümler açılamadı: %w", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("initials", initials)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("cardcatalog: şablonlar yüklenemedi: %w", err)
	}

	c := &Catalog{descriptors: make(map[int]Descriptor, len(descriptors)), engine: engine}
	for _, d := range descriptors {
		if d.ID < 1 {
			return nil, fmt.Errorf("cardcatalog: geçersiz şablon kimliği %d", d.ID)
		}
		if _, dup := c.descriptors[d.ID]; dup {
			return nil, fmt.Errorf("cardcatalog: yinelenen şablon kimliği %d", d.ID)
		}
		if engine.Templates.Lookup(d.View) == nil {
			return nil, fmt.Errorf("cardcatalog: %d için görünüm bulunamadı: %s", d.ID, d.View)
		}
		c.descriptors[d.ID] = d
		c.ids = append(c.ids, d.ID)
	}
	sort.Ints(c.ids)
	return c, nil
}

// Engine kart ve sayfa görünümlerini içeren motor; fiber'a Views olarak verilir.
func (c *Catalog) Engine() *html.Engine { return c.engine }

// IDs tüm kimlikleri artan sırada döndürür.
func (c *Catalog) IDs() []int {
	out := make([]int, len(c.ids))
	copy(out, c.ids)
	return out
}

func (c *Catalog) IDsByCategory(category Category) []int {
	var out []int
	for _, id := range c.ids {
		if c.descriptors[id].Category == category {
			out = append(out, id)
		}
	}
	return out
}

func (c *Catalog) Has(id int) bool {
	_, ok := c.descriptors[id]
	return ok
}

func (c *Catalog) Get(id int) (Descriptor, bool) {
	d, ok := c.descriptors[id]
	return d, ok
}

// Entries verilen kimliklerin katalog kayıtlarını döndürür; kimlik verilmezse tümü.
// Bilinmeyen kimlikler atlanır.
func (c *Catalog) Entries(ids ...int) []Entry {
	if len(ids) == 0 {
		ids = c.ids
	}
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if d, ok := c.descriptors[id]; ok {
			out = append(out, Entry{ID: d.ID, Category: d.Category, Label: d.Label})
		}
	}
	return out
}

// Render şablonu profil verisiyle w'ye yazar. Sıfır boyutlar varsayılana döner.
func (c *Catalog) Render(w io.Writer, id int, profile models.CardProfile, dims Dimensions, opts RenderOptions) error {
	d, ok := c.descriptors[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTemplate, id)
	}
	dims = dims.orDefault()

	view := cardView{
		TemplateID:        d.ID,
		Label:             d.Label,
		Category:          d.Category,
		Card:              profile,
		Width:             dims.Width,
		Height:            dims.Height,
		SelectionDisabled: opts.SelectionDisabled,
	}
	for _, f := range profile.SocialFields() {
		if *f.Value != "" {
			view.Social = append(view.Social, socialLink{Key: f.Key, URL: *f.Value})
		}
	}
	return c.engine.Render(w, d.View, view)
}

// Fallback id katalogda yoksa 1 numaralı şablonu, o da yoksa ilk şablonu döndürür.
func (c *Catalog) Fallback(id int) int {
	if c.Has(id) {
		return id
	}
	if c.Has(1) || len(c.ids) == 0 {
		return 1
	}
	return c.ids[0]
}

// RenderHTML kartı sayfa görünümlerine gömülebilecek biçimde üretir.
func (c *Catalog) RenderHTML(id int, profile models.CardProfile, dims Dimensions, opts RenderOptions) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf, id, profile, dims, opts); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' || r == '.' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}
