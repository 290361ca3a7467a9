package catalog

// CanonicalProducts is the master list of true product identities. It is
// fixed at process start; changing it requires a restart. Order matters: the
// fuzzy matcher breaks score ties by declaration order.
var CanonicalProducts = []string{
	"ARRENDAMIENTO",
	"CHENILLE PREMIUM",
	"CHENILLE JACQUARD",
	"TELA AUTO",
	"TELA AUTO PERFORADA",
	"PVC BONDE",
	"PVC EXPANDIBLE",
	"VINIL AUTOMOTRIZ",
	"VINIL MARINO",
	"CUERINA NAPA",
	"GAMUZA PREMIER",
	"ALFOMBRA TRAILER",
	"ALFOMBRA RESIDENCIAL",
	"CIELO AUTOMOTRIZ",
	"ESPUMA LAMINADA",
	"HULE ESPUMA",
	"MALLA DEPORTIVA",
	"LONA AHULADA",
	"CORDON ELASTICO",
	"HILO CALIBRE 20",
	"HILO CALIBRE 40",
	"VELCRO INDUSTRIAL",
	"PIEL GENUINA",
	"FIELTRO AUTOMOTRIZ",
	"TACTOPIEL",
	"MICROFIBRA PREMIER",
	"CIERRE CONTINUO",
	"PLASTICO CRISTAL",
	"MALLA SOMBRA",
	"ESTOPA BLANCA",
}
