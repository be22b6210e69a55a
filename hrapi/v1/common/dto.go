package common

// Wire types for the HR backend. Optional fields are pointers so absent and
// empty can be told apart; downstream code gets normalized values from the
// store instead of poking at these defensively.

type TokenPairDTO struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserDTO struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Nom         string `json:"nom,omitempty"`
	IsStaff     bool   `json:"is_staff,omitempty"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
}

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nom      string `json:"nom,omitempty"`
}

type DepartementDTO struct {
	ID           string  `json:"id_departement"`
	Nom          string  `json:"nom"`
	Responsable  string  `json:"responsable,omitempty"`
	Description  *string `json:"description,omitempty"`
	NbrEmploye   int     `json:"nbr_employe,omitempty"`
	Localisation string  `json:"localisation,omitempty"`
	CreatedBy    *int    `json:"created_by,omitempty"`
}

type EmployeDTO struct {
	CIN            string          `json:"cin"`
	Titre          string          `json:"titre,omitempty"`
	Matricule      *string         `json:"matricule,omitempty"`
	Nom            string          `json:"nom"`
	Prenom         string          `json:"prenom"`
	Email          string          `json:"email,omitempty"`
	Telephone      *string         `json:"telephone,omitempty"`
	Poste          string          `json:"poste,omitempty"`
	Statut         string          `json:"statut,omitempty"`
	Departement    *DepartementDTO `json:"departement,omitempty"`
	DepartementPK  *string         `json:"departement_pk,omitempty"`
	CreatedBy      *int            `json:"created_by,omitempty"`
	HeureEntree    *TimeOnly       `json:"heure_entree_attendue,omitempty"`
	HeureSortie    *TimeOnly       `json:"heure_sortie_attendue,omitempty"`
	MargeTolerance *int            `json:"marge_tolerance_minutes,omitempty"`
}

// DisplayName is "prenom nom", falling back to whichever part exists.
func (e EmployeDTO) DisplayName() string {
	switch {
	case e.Prenom != "" && e.Nom != "":
		return e.Prenom + " " + e.Nom
	case e.Nom != "":
		return e.Nom
	default:
		return e.Prenom
	}
}

type PointageDTO struct {
	ID               string    `json:"id_pointage"`
	Employe          string    `json:"employe"`
	EmployeNom       *string   `json:"employe_nom,omitempty"`
	EmployeMatricule *string   `json:"employe_matricule,omitempty"`
	Date             DateOnly  `json:"date_pointage"`
	HeureEntree      TimeOnly  `json:"heure_entree"`
	HeureSortie      *TimeOnly `json:"heure_sortie,omitempty"`
	Remarque         *string   `json:"remarque,omitempty"`
	DureeTravail     *string   `json:"duree_travail,omitempty"`
	CreatedBy        *int      `json:"created_by,omitempty"`
}

// MonthlyStatsDTO is the aggregate from /pointages/stats_mensuelles/.
type MonthlyStatsDTO struct {
	Mois           int     `json:"mois"`
	Annee          int     `json:"annee"`
	TotalPointages int     `json:"total_pointages"`
	HeuresTotales  float64 `json:"heures_totales,omitempty"`
}

// EmployeStatsDTO is the aggregate from /employes/stats/.
type EmployeStatsDTO struct {
	Total    int `json:"total"`
	Actifs   int `json:"actifs"`
	Inactifs int `json:"inactifs"`
}
