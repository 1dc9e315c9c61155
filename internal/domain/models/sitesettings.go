// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is shown in the page header when site_name is not configured.
const DefaultSiteName = "Recursos Ayuda Andalucía"

// DefaultFooterNote is the disclaimer rendered under every directory page.
const DefaultFooterNote = "Esta herramienta actúa únicamente como directorio facilitador de acceso. " +
	"Los derechos de propiedad intelectual de los recursos externos enlazados pertenecen a sus respectivos organismos y autores."
