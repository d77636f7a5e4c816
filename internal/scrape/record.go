package scrape

// VacancyRecord is the normalized representation of a scraped job posting.
// Every field is always populated; unavailable fields serialize to the
// sentinel instead of being omitted. The JSON keys match the dataset's
// source naming.
type VacancyRecord struct {
	Title        Field    `json:"Título del puesto"`
	URL          Field    `json:"Enlace de la vacante"`
	Company      Field    `json:"Nombre de la empresa"`
	Description  Field    `json:"Información del trabajo"`
	Requirements Field    `json:"Requisitos"`
	Keywords     []string `json:"Palabras clave"`
	Recruiter    Field    `json:"Nombre del reclutador"`
	Email        Field    `json:"Correo electrónico"`
	Phone        Field    `json:"WhatsApp"`
	Salary       Field    `json:"Salario"`
	Schedule     Field    `json:"Horario laboral"`
	Modality     Field    `json:"Modalidad de trabajo"`
	Location     Field    `json:"Ubicación"`
	Benefits     Field    `json:"Beneficios"`
}
