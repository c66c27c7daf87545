package entity

// TableConfig describes one logical table exposed through the generic
// data endpoints. Only names present in the registry are reachable;
// everything else is rejected before touching the database.
type TableConfig struct {
	Table          string // Physical table name.
	PrimaryKey     string // Primary key column.
	OwnershipField string // Row-ownership column; empty when the table is not ownership-scoped.
}

// OwnershipScoped reports whether rows of the table belong to the user
// that created them.
func (c TableConfig) OwnershipScoped() bool {
	return c.OwnershipField != ""
}

// tableRegistry maps the logical names used by the frontend to the
// physical tables they represent.
var tableRegistry = map[string]TableConfig{
	"Users":      {Table: "users", PrimaryKey: "id"},
	"Issues":     {Table: "issues", PrimaryKey: "issue_id", OwnershipField: "created_by"},
	"Orders":     {Table: "orders", PrimaryKey: "order_id", OwnershipField: "created_by"},
	"Devices":    {Table: "devices", PrimaryKey: "id"},
	"Facilities": {Table: "facilities", PrimaryKey: "id"},
	"Networks":   {Table: "networks", PrimaryKey: "id"},
	"Suppliers":  {Table: "suppliers", PrimaryKey: "id"},
	"Warehouse":  {Table: "warehouses", PrimaryKey: "id"},
	"Sectors":    {Table: "sectors", PrimaryKey: "id"},
	"Profiles":   {Table: "profiles", PrimaryKey: "id"},
	"Roles":      {Table: "roles", PrimaryKey: "id"},
	"Comments":   {Table: "comments", PrimaryKey: "id"},
}

// ColumnMeta describes one column of a registered table, as reported by
// the database catalog. The frontend builds its forms from this.
type ColumnMeta struct {
	Name     string `json:"name"`
	DataType string `json:"dataType"`
	Nullable bool   `json:"nullable"`
}

// LookupTable resolves a logical table name against the registry.
func LookupTable(name string) (TableConfig, bool) {
	cfg, ok := tableRegistry[name]

	return cfg, ok
}
