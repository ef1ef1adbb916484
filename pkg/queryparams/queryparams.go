package queryparams

// Liste sorguları için varsayılanlar ve sınırlar.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams liste/arama isteklerinin ortak query parametreleri.
type ListParams struct {
	Page     int    `query:"page"`
	PerPage  int    `query:"per_page"`
	SortBy   string `query:"sort_by"`
	OrderBy  string `query:"order_by"`
	Name     string `query:"q"`        // Serbest metin araması
	Status   string `query:"status"`   // "true"/"false" filtreleri
	Category string `query:"category"` // Meslek alanı filtresi
}

// DefaultListParams verilen sıralama sütunuyla varsayılan parametreleri üretir.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate parametreleri güvenli aralıklara çeker.
func (p *ListParams) Validate() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset sayfalama offset'ini döndürür.
func (p *ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta sayfalama üst verisi.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult sayfalanmış liste sonucu.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages toplam sayfa sayısını hesaplar.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	pages := int(totalItems) / perPage
	if int(totalItems)%perPage != 0 {
		pages++
	}
	return pages
}
