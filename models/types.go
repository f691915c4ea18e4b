package models

import "time"

// Grid geometry
const (
	GridSize  = 5
	CellCount = GridSize * GridSize
)

// Pase values (closed set)
const (
	PasePasodoble    = "Pasodoble"
	PaseCuple        = "Cuplé"
	PasePresentacion = "Presentación"
	PasePopurri      = "Popurrí"
)

// Roles carried by identity tokens
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Line kinds
const (
	LineRow      = "row"
	LineColumn   = "column"
	LineDiagonal = "diagonal"
)

// Pases lists the recognized pase values in display order.
var Pases = []string{PasePresentacion, PasePasodoble, PaseCuple, PasePopurri}

func IsValidPase(pase string) bool {
	switch pase {
	case PasePasodoble, PaseCuple, PasePresentacion, PasePopurri:
		return true
	}
	return false
}

// Identity is the already-authenticated caller.
type Identity struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Request types

type MarkCellRequest struct {
	AgrupacionID   *string `json:"agrupacionId,omitempty"`
	AgrupacionName string  `json:"agrupacionName"`
	AgrupacionTipo string  `json:"agrupacionTipo,omitempty"`
	Pase           string  `json:"pase"`
}

type EditCellTitleRequest struct {
	Title string `json:"title"`
}

// Response types

type ProgressResponse struct {
	Progress    UserBingoProgress `json:"progress"`
	Lines       []Line            `json:"lines"`
	TotalMarked int               `json:"totalMarked"`
	Completed   bool              `json:"completed"`
}

type MarkCellResponse struct {
	Cell        MarkedCell `json:"cell"`
	Lines       []Line     `json:"lines"`
	NewLines    []Line     `json:"newLines"`
	TotalMarked int        `json:"totalMarked"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type EditCellTitleResponse struct {
	Updated bool   `json:"updated"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type TemplateCell struct {
	ID       int    `json:"id" bson:"id"`
	Title    string `json:"title" bson:"title"`
	Position int    `json:"position" bson:"position"`
}

type BingoTemplate struct {
	Year      string         `json:"year" bson:"year"`
	Cells     []TemplateCell `json:"cells" bson:"cells"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type MarkedCell struct {
	CellID         int       `json:"cellId" bson:"cellId"`
	AgrupacionID   *string   `json:"agrupacionId,omitempty" bson:"agrupacionId,omitempty"`
	AgrupacionName string    `json:"agrupacionName" bson:"agrupacionName"`
	AgrupacionTipo string    `json:"agrupacionTipo,omitempty" bson:"agrupacionTipo,omitempty"`
	Pase           string    `json:"pase" bson:"pase"`
	MarkedAt       time.Time `json:"markedAt" bson:"markedAt"`
}

type UserBingoProgress struct {
	UserID      string       `json:"userId" bson:"userId"`
	Year        string       `json:"year" bson:"year"`
	Cells       []MarkedCell `json:"cells" bson:"cells"`
	CompletedAt *time.Time   `json:"completedAt" bson:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// MarkedIDs returns the cell ids present in the progress record.
func (p UserBingoProgress) MarkedIDs() []int {
	ids := make([]int, 0, len(p.Cells))
	for _, c := range p.Cells {
		ids = append(ids, c.CellID)
	}
	return ids
}

// HasCell reports whether cellID is already marked.
func (p UserBingoProgress) HasCell(cellID int) bool {
	for _, c := range p.Cells {
		if c.CellID == cellID {
			return true
		}
	}
	return false
}

// Line is one of the 12 winning combinations. Index is 0-based within its kind.
type Line struct {
	Kind  string        `json:"kind"`
	Index int           `json:"index"`
	Cells [GridSize]int `json:"cells"`
}

// Catalog types

type Agrupacion struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Tipo string `json:"tipo" bson:"tipo"`
	Year string `json:"year,omitempty" bson:"year,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
