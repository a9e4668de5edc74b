package main

import (
	"log"
	"os"
	"time"

	"homestay/internal/database"
	"homestay/internal/domain"
	jwtsvc "homestay/internal/pkg/jwt"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "homestay.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM accommodations")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	hostHash, _ := bcrypt.GenerateFromPassword([]byte("host123"), bcrypt.DefaultCost)
	host := domain.User{
		Email:        "somchai@homestay.th",
		PasswordHash: string(hostHash),
		Role:         domain.RoleHost,
		Name:         "Somchai",
	}
	db.Create(&host)

	guests := []domain.User{}
	guestEmails := []string{"mali@gmail.com", "anan@gmail.com"}
	for i, email := range guestEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		guest := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleGuest,
			Name:         []string{"Mali", "Anan"}[i],
		}
		db.Create(&guest)
		guests = append(guests, guest)
	}

	// ================== ACCOMMODATIONS ==================
	log.Println("Creating accommodations...")

	beachHouse := domain.Accommodation{
		OwnerID:          host.ID,
		Name:             "Baan Talay Beach House",
		Description:      "Two-room beach house a short walk from the pier.",
		Address:          "12 Beach Road",
		City:             "Hua Hin",
		State:            "Prachuap Khiri Khan",
		Country:          "Thailand",
		Category:         "house",
		Amenities:        []string{"wifi", "kitchen", "parking"},
		MinPricePerNight: 900,
		Status:           domain.ListingSuccess,
	}
	db.Create(&beachHouse)

	cityLoft := domain.Accommodation{
		OwnerID:          host.ID,
		Name:             "Sukhumvit City Loft",
		Description:      "Compact loft near the BTS.",
		Address:          "88 Sukhumvit 23",
		City:             "Bangkok",
		Country:          "Thailand",
		Category:         "apartment",
		Amenities:        []string{"wifi", "gym", "pool"},
		MinPricePerNight: 1400,
		Status:           domain.ListingSuccess,
	}
	db.Create(&cityLoft)

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	seaView := domain.Room{
		AccommodationID: beachHouse.ID,
		Name:            "Sea View Room",
		SizeSqm:         28,
		MaxGuest:        2,
		Feature:         "Sea view",
		PricePerNight:   1000,
		BedType:         domain.BedQueen,
		BedCount:        1,
		BathroomCount:   1,
	}
	db.Create(&seaView)

	gardenView := domain.Room{
		AccommodationID: beachHouse.ID,
		Name:            "Garden View Room",
		SizeSqm:         24,
		MaxGuest:        3,
		Feature:         "Garden view",
		PricePerNight:   900,
		BedType:         domain.BedTwin,
		BedCount:        2,
		BathroomCount:   1,
	}
	db.Create(&gardenView)

	loftRoom := domain.Room{
		AccommodationID: cityLoft.ID,
		Name:            "Loft Suite",
		SizeSqm:         42,
		MaxGuest:        2,
		Feature:         "City view",
		PricePerNight:   1400,
		BedType:         domain.BedKing,
		BedCount:        1,
		BathroomCount:   1,
	}
	db.Create(&loftRoom)

	// ================== BOOKINGS ==================
	log.Println("Creating a sample booking...")

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	booking := domain.Booking{
		RoomID:          seaView.ID,
		AccommodationID: beachHouse.ID,
		GuestID:         guests[0].ID,
		OwnerID:         host.ID,
		StartDate:       start,
		EndDate:         end,
		NightsStayed:    3,
		TotalPrice:      3 * seaView.PricePerNight,
		Status:          domain.BookingNotPaid,
	}
	db.Create(&booking)

	// ================== DEV TOKENS ==================
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		j := jwtsvc.New(secret, 7*24*time.Hour)

		hostToken, _ := j.GenerateToken(host.ID, host.Role)
		log.Println("Host token:", hostToken)

		for i, g := range guests {
			token, _ := j.GenerateToken(g.ID, g.Role)
			log.Printf("Guest %d token: %s", i+1, token)
		}
	} else {
		log.Println("JWT_SECRET not set, skipping dev tokens")
	}

	log.Println("Seed complete.")
}
