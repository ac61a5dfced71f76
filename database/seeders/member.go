package seeders

import (
	"errors"
	"fmt"

	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// DemoMembers yerel geliştirme için rehber kayıtları; kimlik alanları farklı
// ipuçlarıyla bulunabilecek şekilde dağıtılmıştır.
func DemoMembers() []models.Member {
	return []models.Member{
		{
			UserID: "2", CompanyDetailID: "CD-1002", UserDetailID: "UD-2002",
			MemberName: "Arjun Mehta", MembershipID: "LM-0154", Email: "arjun.mehta@example.org",
			Phone: "+91 98450 11223", CompanyName: "Mehta Textiles", CompanyTagline: "Woven since 1962",
			Title: "Managing Partner", CompanyID: "C-1002", DOB: "1978-06-14", BloodGroup: "B+",
			Address: "14 Market Road, Bengaluru", MembershipValidUntil: "2027-03-31T00:00:00Z",
			MemberPhoto: "/uploads/members/arjun.jpg", CompanyLogo: "/uploads/logos/mehta.png",
		},
		{
			UserID: "3", CompanyDetailID: "CD-1003", UserDetailID: "UD-2003",
			MemberName: "Sara Lindqvist", MembershipID: "LM-0231", Email: "sara@lindqvist.example",
			Phone: "+46 70 123 45 67", CompanyName: "Lindqvist Design", Title: "Founder",
			BloodGroup: "O-", MembershipValidUntil: "2026-12-31",
		},
		{
			UserID: "4", CompanyDetailID: "CD-1004",
			MemberName: "Kwame Boateng", MembershipID: "LM-0307", Email: "kwame@boateng.example",
			CompanyName: "Boateng Logistics", CompanyTagline: "On time, every time", Title: "Director",
		},
	}
}

func DemoSocialProfiles() []models.SocialProfile {
	return []models.SocialProfile{
		{UserID: "2", LinkedinURL: "linkedin.com/in/arjunmehta", InstagramURL: "https://instagram.com/mehtatextiles"},
		{UserID: "3", TwitterURL: "x.com/saralindqvist", PinterestURL: "pinterest.com/lindqvistdesign"},
	}
}

// SeedDemoMembers rehber ve sosyal profil örneklerini ekler. Var olan kayıtlar atlanır.
func SeedDemoMembers(db *gorm.DB) error {
	var errs error
	for _, m := range DemoMembers() {
		var count int64
		if err := db.Model(&models.Member{}).Where("company_detail_id = ?", m.CompanyDetailID).Count(&count).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("üye %s: %w", m.CompanyDetailID, err))
			continue
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&m).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("üye %s: %w", m.CompanyDetailID, err))
			continue
		}
		configslog.SLog.Infof("Örnek üye oluşturuldu: %s (ID: %d)", m.MemberName, m.ID)
	}

	for _, sp := range DemoSocialProfiles() {
		var count int64
		if err := db.Model(&models.SocialProfile{}).Where("user_id = ?", sp.UserID).Count(&count).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sosyal profil %s: %w", sp.UserID, err))
			continue
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&sp).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sosyal profil %s: %w", sp.UserID, err))
		}
	}

	if errs != nil {
		configslog.SLog.Warnf("Örnek üyeler seed edilirken %d hata oluştu", len(multierr.Errors(errs)))
		return errors.Join(errors.New("örnek üyeler seed edilemedi"), errs)
	}
	return nil
}
