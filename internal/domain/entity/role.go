package entity

// Roles válidos.
const (
	RoleEntrepreneur = "entrepreneur"
	RoleEmployee     = "employee"
)

// Role agrupa permisos heredados por los usuarios que lo tienen.
type Role struct {
	ID   string
	Name string
}

// Permission permiso identificado por su codename (ej. "view_products").
type Permission struct {
	ID       string
	Codename string
	Name     string
	Resource string // company, product, supplier, purchase, sale
}

// Codenames de permisos.
const (
	PermViewCompanies      = "view_companies"
	PermCreateCompany      = "create_company"
	PermManageEmployees    = "manage_employees"
	PermManageCompanyUsers = "manage_company_users"

	PermViewProducts  = "view_products"
	PermCreateProduct = "create_product"
	PermEditProduct   = "edit_product"
	PermDeleteProduct = "delete_product"

	PermViewSupplier   = "view_supplier"
	PermAddSupplier    = "add_supplier"
	PermChangeSupplier = "change_supplier"
	PermDeleteSupplier = "delete_supplier"

	PermViewPurchases  = "view_purchases"
	PermCreatePurchase = "create_purchase"
	PermEditPurchase   = "edit_purchase"
	PermDeletePurchase = "delete_purchase"

	PermViewSales  = "view_sales"
	PermCreateSale = "create_sale"
	PermEditSale   = "edit_sale"
	PermDeleteSale = "delete_sale"
)

// PermissionCatalog catálogo completo, en el orden en que se siembra.
var PermissionCatalog = []Permission{
	{Codename: PermViewCompanies, Name: "Can view companies", Resource: "company"},
	{Codename: PermCreateCompany, Name: "Can create company", Resource: "company"},
	{Codename: PermManageEmployees, Name: "Can manage employees", Resource: "company"},
	{Codename: PermManageCompanyUsers, Name: "Can manage company users", Resource: "company"},
	{Codename: PermViewProducts, Name: "Can view products", Resource: "product"},
	{Codename: PermCreateProduct, Name: "Can create product", Resource: "product"},
	{Codename: PermEditProduct, Name: "Can edit product", Resource: "product"},
	{Codename: PermDeleteProduct, Name: "Can delete product", Resource: "product"},
	{Codename: PermViewSupplier, Name: "Can view supplier", Resource: "supplier"},
	{Codename: PermAddSupplier, Name: "Can add supplier", Resource: "supplier"},
	{Codename: PermChangeSupplier, Name: "Can change supplier", Resource: "supplier"},
	{Codename: PermDeleteSupplier, Name: "Can delete supplier", Resource: "supplier"},
	{Codename: PermViewPurchases, Name: "Can view purchases", Resource: "purchase"},
	{Codename: PermCreatePurchase, Name: "Can create purchase", Resource: "purchase"},
	{Codename: PermEditPurchase, Name: "Can edit purchase", Resource: "purchase"},
	{Codename: PermDeletePurchase, Name: "Can delete purchase", Resource: "purchase"},
	{Codename: PermViewSales, Name: "Can view sales", Resource: "sale"},
	{Codename: PermCreateSale, Name: "Can create sale", Resource: "sale"},
	{Codename: PermEditSale, Name: "Can edit sale", Resource: "sale"},
	{Codename: PermDeleteSale, Name: "Can delete sale", Resource: "sale"},
}

// OwnerPermissions permisos directos que recibe quien crea su compañía.
var OwnerPermissions = []string{
	PermCreateCompany,
	PermManageCompanyUsers,
	PermViewCompanies,
	PermManageEmployees,
	PermViewProducts,
	PermCreateProduct,
	PermEditProduct,
	PermDeleteProduct,
}

// EmployeeRolePermissions permisos del rol employee.
var EmployeeRolePermissions = []string{PermViewCompanies, PermViewProducts}

// IsKnownPermission indica si el codename está en el catálogo.
func IsKnownPermission(codename string) bool {
	for _, p := range PermissionCatalog {
		if p.Codename == codename {
			return true
		}
	}
	return false
}

// RolePermissions devuelve los permisos que el rol debe tener tras setup-permissions.
func RolePermissions(role string) []string {
	switch role {
	case RoleEntrepreneur:
		out := make([]string, 0, len(PermissionCatalog))
		for _, p := range PermissionCatalog {
			out = append(out, p.Codename)
		}
		return out
	case RoleEmployee:
		return EmployeeRolePermissions
	default:
		return nil
	}
}
