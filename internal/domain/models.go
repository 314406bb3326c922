// Package domain defines the persistence models of the job board: users and
// their role extensions, reference data (companies, cities, countries,
// industries), job postings, and the employee/job relations (applications,
// shortlist, dislike). These types are mapped with GORM and keep the original
// table and column names so the derived views and the auto-withdraw trigger
// can address them directly.
package domain

import "time"

// Roles accepted at signup.
const (
	RoleEmployee = "employee"
	RoleEmployer = "employer"
)

// Application status values. StatusApplied is the insert default; the
// remaining transitions are constrained by CanTransition and, for the
// accepted-cascade, by the auto_withdraw_applications trigger.
const (
	StatusApplied   = "Applied"
	StatusAccepted  = "Accepted"
	StatusRejected  = "Rejected"
	StatusWithdrawn = "Withdrawn"
)

// CanTransition reports whether an application may move from one status to
// another through the API. Only pending applications can be decided;
// Accepted→Withdrawn happens exclusively via the database trigger when a
// sibling application is accepted, never through this check.
func CanTransition(from, to string) bool {
	if from != StatusApplied {
		return false
	}
	switch to {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Country is pre-seeded reference data.
type Country struct {
	CountryID   int64  `json:"countryId"   gorm:"column:CountryId;primaryKey;autoIncrement"`
	CountryName string `json:"countryName" gorm:"column:CountryName;type:varchar(128);not null;uniqueIndex"`
}

// TableName returns the database table name for Country.
func (Country) TableName() string { return "Countries" }

// City is pre-seeded reference data. City names are only unique within a
// country, so lookups always pair CityName with CountryName.
type City struct {
	CityID    int64  `json:"cityId"    gorm:"column:CityId;primaryKey;autoIncrement"`
	CityName  string `json:"cityName"  gorm:"column:CityName;type:varchar(128);not null;index"`
	CountryID int64  `json:"countryId" gorm:"column:CountryId;not null;index"`

	Country Country `json:"-" gorm:"foreignKey:CountryID;references:CountryID"`
}

// TableName returns the database table name for City.
func (City) TableName() string { return "Cities" }

// Company is pre-seeded reference data.
type Company struct {
	CompanyID   int64  `json:"companyId"   gorm:"column:CompanyId;primaryKey;autoIncrement"`
	CompanyName string `json:"companyName" gorm:"column:CompanyName;type:varchar(255);not null;uniqueIndex"`
	Size        string `json:"size"        gorm:"column:Size;type:varchar(64)"`
	CityID      *int64 `json:"cityId"      gorm:"column:CityId"`
}

// TableName returns the database table name for Company.
func (Company) TableName() string { return "Companies" }

// Industry is pre-seeded reference data.
type Industry struct {
	IndustryID   int64  `json:"industryId"   gorm:"column:IndustryId;primaryKey;autoIncrement"`
	IndustryName string `json:"industryName" gorm:"column:IndustryName;type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the database table name for Industry.
func (Industry) TableName() string { return "Industries" }

// FocusOn links a company to the industries it operates in. Job
// recommendations walk employer→company→FocusOn to find same-industry jobs.
type FocusOn struct {
	CompanyID  int64 `json:"companyId"  gorm:"column:CompanyId;primaryKey"`
	IndustryID int64 `json:"industryId" gorm:"column:IndustryId;primaryKey"`
}

// TableName returns the database table name for FocusOn.
func (FocusOn) TableName() string { return "FocusOn" }

// User is the shared identity row for both roles. Phone and Email are login
// identifiers and must be unique; Email may be absent. The stored
// PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	UserID       int64     `json:"userId"    gorm:"column:UserId;primaryKey;autoIncrement"`
	Phone        string    `json:"phone"     gorm:"column:Phone;type:varchar(32);not null;uniqueIndex"`
	PasswordHash string    `json:"-"         gorm:"column:PasswordHash;type:varchar(128);not null"`
	UserName     string    `json:"userName"  gorm:"column:UserName;type:varchar(128);not null"`
	CityID       int64     `json:"cityId"    gorm:"column:CityId;not null"`
	Role         string    `json:"role"      gorm:"column:Role;type:varchar(16);not null;check:Role IN ('employee','employer')"`
	Email        *string   `json:"email"     gorm:"column:Email;type:varchar(255);uniqueIndex"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:CreatedAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "Users" }

// Employee is the 1:1 role extension for employee users. A User row must
// never exist without its extension; signup inserts both in one transaction.
type Employee struct {
	UserID    int64   `json:"userId"    gorm:"column:UserId;primaryKey"`
	ResumeURL *string `json:"resumeUrl" gorm:"column:ResumeUrl;type:varchar(512)"`

	User User `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for Employee.
func (Employee) TableName() string { return "Employees" }

// Employer is the 1:1 role extension for employer users.
type Employer struct {
	UserID    int64 `json:"userId"    gorm:"column:UserId;primaryKey"`
	CompanyID int64 `json:"companyId" gorm:"column:CompanyId;not null;index"`

	User    User    `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
	Company Company `json:"-" gorm:"foreignKey:CompanyID;references:CompanyID"`
}

// TableName returns the database table name for Employer.
func (Employer) TableName() string { return "Employers" }

// JobPosting is a job advertised by an employer in a city. Postings are
// soft-deactivated via IsActive rather than deleted; only active postings
// appear in search results.
type JobPosting struct {
	JobID       int64     `json:"jobId"       gorm:"column:JobId;primaryKey;autoIncrement"`
	EmployerID  int64     `json:"employerId"  gorm:"column:EmployerId;not null;index:idxOnEmployerJobs"`
	Title       string    `json:"title"       gorm:"column:Title;type:varchar(255);not null"`
	Description string    `json:"description" gorm:"column:Description;type:text"`
	MinSalary   *float64  `json:"minSalary"   gorm:"column:MinSalary"`
	MaxSalary   *float64  `json:"maxSalary"   gorm:"column:MaxSalary"`
	WorkType    string    `json:"workType"    gorm:"column:WorkType;type:varchar(32);not null;default:'Full-time'"`
	CityID      int64     `json:"cityId"      gorm:"column:CityId;not null;index"`
	IsActive    bool      `json:"isActive"    gorm:"column:IsActive;not null;default:true"`
	PostDate    time.Time `json:"postDate"    gorm:"column:PostDate;index"`

	Employer Employer `json:"-" gorm:"foreignKey:EmployerID;references:UserID"`
	City     City     `json:"-" gorm:"foreignKey:CityID;references:CityID"`
}

// TableName returns the database table name for JobPosting.
func (JobPosting) TableName() string { return "JobPostings" }

// Application records an employee applying to a job. The (EmployeeId, JobId)
// pair is unique at the schema level; the constraint is the authoritative
// duplicate signal under concurrent requests.
type Application struct {
	ApplicationID int64     `json:"applicationId" gorm:"column:ApplicationId;primaryKey;autoIncrement"`
	EmployeeID    int64     `json:"employeeId"    gorm:"column:EmployeeId;not null;uniqueIndex:ux_app_employee_job"`
	JobID         int64     `json:"jobId"         gorm:"column:JobId;not null;uniqueIndex:ux_app_employee_job;index"`
	Status        string    `json:"status"        gorm:"column:Status;type:varchar(16);not null;default:'Applied';check:Status IN ('Applied','Accepted','Rejected','Withdrawn')"`
	ApplyDate     time.Time `json:"applyDate"     gorm:"column:ApplyDate"`

	Employee Employee   `json:"-" gorm:"foreignKey:EmployeeID;references:UserID"`
	Job      JobPosting `json:"-" gorm:"foreignKey:JobID;references:JobID"`
}

// TableName returns the database table name for Application.
func (Application) TableName() string { return "Applications" }

// Shortlist is an employee-curated membership set over jobs. The composite
// primary key makes double-inserts constraint violations rather than silent
// duplicates.
type Shortlist struct {
	EmployeeID int64 `json:"employeeId" gorm:"column:EmployeeId;primaryKey"`
	JobID      int64 `json:"jobId"      gorm:"column:JobId;primaryKey"`

	Employee Employee   `json:"-" gorm:"foreignKey:EmployeeID;references:UserID"`
	Job      JobPosting `json:"-" gorm:"foreignKey:JobID;references:JobID"`
}

// TableName returns the database table name for Shortlist.
func (Shortlist) TableName() string { return "Shortlist" }

// Dislike mirrors Shortlist with opposite intent; disliked jobs are excluded
// from that employee's search results.
type Dislike struct {
	EmployeeID int64 `json:"employeeId" gorm:"column:EmployeeId;primaryKey"`
	JobID      int64 `json:"jobId"      gorm:"column:JobId;primaryKey"`

	Employee Employee   `json:"-" gorm:"foreignKey:EmployeeID;references:UserID"`
	Job      JobPosting `json:"-" gorm:"foreignKey:JobID;references:JobID"`
}

// TableName returns the database table name for Dislike.
func (Dislike) TableName() string { return "Dislike" }
