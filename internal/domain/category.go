package domain

import "time"

// Category is a node in the unbounded-depth equipment classification tree.
type Category struct {
	ID                  int32      `json:"id"`
	Name                string     `json:"name"`
	Description         *string    `json:"description,omitempty"`
	ParentID            *int32     `json:"parentId,omitempty"`
	ShowInPrintOverview bool       `json:"showInPrintOverview"`
	EquipmentCount      int64      `json:"equipmentCount,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	DeletedAt           *time.Time `json:"deletedAt,omitempty"`
}

// CategoryPathRow is one hop of a root-to-node ancestry chain, as returned
// by the recursive path query.
type CategoryPathRow struct {
	ID                  int32
	Name                string
	ShowInPrintOverview bool
}

// PrintableCategory is a category re-leveled for a printed breakdown: level
// starts at 1 and only counts categories with ShowInPrintOverview=true,
// except for the single-root fallback used when nothing in the chain
// qualifies.
type PrintableCategory struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// SubcategoryPrefix overrides the plain numeric barcode sequence for
// equipment directly filed under a given category.
type SubcategoryPrefix struct {
	ID          int32     `json:"id"`
	CategoryID  int32     `json:"categoryId"`
	Name        string    `json:"name"`
	Prefix      string    `json:"prefix"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SubcategoryPrefixFilter narrows ListSubcategoryPrefixes by category
// and/or a name search query, mirroring the original's query parameters.
type SubcategoryPrefixFilter struct {
	CategoryID *int32
	Query      string
}

type CategoryRepository interface {
	Get(id int32) (*Category, error)
	GetByName(name string) (*Category, error)
	GetAll(parentID *int32, page Page) ([]*Category, int64, error)
	GetChildren(id int32) ([]*Category, error)
	GetCategoryPathFromRoot(id int32) ([]CategoryPathRow, error)
	GetAllWithEquipmentCount() ([]*Category, error)
	Search(query string) ([]*Category, error)
	Create(category *Category) (*Category, error)
	Update(category *Category) (*Category, error)
	SoftDelete(id int32) error
	CountNonDeletedEquipment(categoryID int32) (int64, error)
	GetSubcategoryPrefix(categoryID int32) (*SubcategoryPrefix, error)
}
