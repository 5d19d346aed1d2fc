package deadline

// Category is a dispute subject together with the statutory week offsets
// that apply to it.
type Category struct {
	Name  string
	Weeks []int
}

// DefaultCategories returns the built-in catalog of mediation dispute
// categories. Each call returns a fresh copy.
func DefaultCategories() []Category {
	return []Category{
		{Name: "İş Hukuku Uyuşmazlıkları", Weeks: []int{3, 4}},
		{Name: "Ticaret Hukuku Uyuşmazlıkları", Weeks: []int{6, 8}},
		{Name: "Tüketici Hukuku Uyuşmazlıkları", Weeks: []int{3, 4}},
		{Name: "Kira İlişkisinden Kaynaklanan Uyuşmazlıklar", Weeks: []int{3, 4}},
		{Name: "Ortaklığın Giderilmesine İlişkin Uyuşmazlıklar", Weeks: []int{3, 4}},
		{Name: "Kat Mülkiyeti Kanunundan Kaynaklanan Uyuşmazlıklar", Weeks: []int{3, 4}},
		{Name: "Komşu Hukukundan Kaynaklanan Uyuşmazlıklar", Weeks: []int{3, 4}},
		{Name: "Tarımsal Üretim Sözleşmesinden Kaynaklanan Uyuşmazlıklar", Weeks: []int{2, 3, 4}},
	}
}

func (c Category) clone() Category {
	weeks := make([]int, len(c.Weeks))
	copy(weeks, c.Weeks)
	return Category{Name: c.Name, Weeks: weeks}
}

// Applies reports whether week is one of the category's offsets.
func (c Category) Applies(week int) bool {
	for _, w := range c.Weeks {
		if w == week {
			return true
		}
	}
	return false
}
