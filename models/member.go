package models

// Member üye rehberindeki (directory) kayıttır. Kartvizit verisinin asıl kaynağıdır;
// birkaç farklı kimlik alanı üzerinden bulunabilir.
type Member struct {
	BaseModel
	CompanyDetailID string `gorm:"type:varchar(64);index" json:"companyDetailId"`
	UserDetailID    string `gorm:"type:varchar(64);index" json:"userDetailId"`
	UserID          string `gorm:"type:varchar(64);index" json:"userId"`

	MemberName     string `gorm:"type:varchar(150);not null" json:"memberName"`
	MembershipID   string `gorm:"type:varchar(50);index" json:"membershipId"`
	Email          string `gorm:"type:varchar(100);index" json:"email"`
	Phone          string `gorm:"type:varchar(30)" json:"phone"`
	CompanyName    string `gorm:"type:varchar(150)" json:"companyName"`
	CompanyTagline string `gorm:"type:varchar(255)" json:"companyTagline"`
	Title          string `gorm:"type:varchar(100)" json:"title"`
	CompanyID      string `gorm:"type:varchar(64)" json:"companyId"`
	DOB            string `gorm:"type:varchar(30)" json:"dob"`
	BloodGroup     string `gorm:"type:varchar(5)" json:"bloodGroup"`
	Address        string `gorm:"type:text" json:"address"`

	// Ham üyelik bitiş zamanı (ISO tarih/zaman). Kartta "Jan 2026" olarak gösterilir.
	MembershipValidUntil string `gorm:"type:varchar(40)" json:"membershipValidUntil"`

	MemberPhoto string `gorm:"type:varchar(500)" json:"memberPhoto"`
	CompanyLogo string `gorm:"type:varchar(500)" json:"companyLogo"`
}

// SocialProfile kullanıcının sosyal medya bağlantıları.
type SocialProfile struct {
	BaseModel
	UserID       string `gorm:"type:varchar(64);uniqueIndex;not null" json:"userId"`
	FacebookURL  string `gorm:"type:varchar(255)" json:"facebookUrl"`
	InstagramURL string `gorm:"type:varchar(255)" json:"instagramUrl"`
	LinkedinURL  string `gorm:"type:varchar(255)" json:"linkedinUrl"`
	YoutubeURL   string `gorm:"type:varchar(255)" json:"youtubeUrl"`
	TwitterURL   string `gorm:"type:varchar(255)" json:"twitterUrl"`
	PinterestURL string `gorm:"type:varchar(255)" json:"pinterestUrl"`
}
