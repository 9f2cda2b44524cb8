package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"golang.org/x/crypto/bcrypt"

	"plushhub/internal/database"
	"plushhub/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "plushhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM photo_likes")
	db.Exec("DELETE FROM photos")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM follows")
	db.Exec("DELETE FROM custom_list_items")
	db.Exec("DELETE FROM custom_lists")
	db.Exec("DELETE FROM collection_items")
	db.Exec("DELETE FROM toy_reviews")
	db.Exec("DELETE FROM toy_likes")
	db.Exec("DELETE FROM toys")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@plushhub.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@plushhub.io / admin123")

	names := []string{"Mia", "Oliver", "Sana", "Theo", "June"}
	users := make([]domain.User, 0, len(names))
	for i, name := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("collector123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        fmt.Sprintf("%s%d@example.com", name, i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			Name:         name,
			Bio:          fmt.Sprintf("Plush collector #%d", i+1),
		}
		db.Create(&u)
		users = append(users, u)
	}

	// ================== TOYS ==================
	log.Println("Creating toys...")

	categories := []domain.ToyCategory{
		domain.CategoryHelloKitty,
		domain.CategorySanrio,
		domain.CategoryDisney,
		domain.CategoryPokemon,
		domain.CategoryOther,
	}
	brands := []string{"Sanrio", "Jellycat", "Squishmallows", "Pokemon Center", "Build-A-Bear"}

	toys := make([]domain.Toy, 0, 20)
	for i := 0; i < 20; i++ {
		creator := users[i%len(users)]
		t := domain.Toy{
			Name:        fmt.Sprintf("Plush %d", i+1),
			Description: "Soft, well-loved, slightly squished.",
			Category:    categories[i%len(categories)],
			Brand:       brands[i%len(brands)],
			Price:       float64(10 + rand.Intn(90)),
			CreatorID:   creator.ID,
		}
		db.Create(&t)
		toys = append(toys, t)

		// Creating a toy also puts it in the creator's owned container.
		db.Create(&domain.CollectionItem{
			UserID: creator.ID,
			ToyID:  t.ID,
			Kind:   domain.ContainerOwned,
		})
	}

	// ================== CONTAINERS ==================
	log.Println("Filling wishlists and favourites...")
	for i, u := range users {
		for j := 0; j < 3; j++ {
			t := toys[(i*3+j+5)%len(toys)]
			if t.CreatorID == u.ID {
				continue
			}
			db.Create(&domain.CollectionItem{UserID: u.ID, ToyID: t.ID, Kind: domain.ContainerWishlist})
		}
		db.Create(&domain.CollectionItem{UserID: u.ID, ToyID: toys[(i+2)%len(toys)].ID, Kind: domain.ContainerFavorites})
	}

	// ================== CUSTOM LISTS ==================
	log.Println("Creating custom lists...")
	for i, u := range users {
		list := domain.CustomList{
			UserID:   u.ID,
			Name:     fmt.Sprintf("%s's picks", u.Name),
			IsPublic: i%2 == 0,
		}
		db.Create(&list)
		db.Create(&domain.CustomListItem{ListID: list.ID, ToyID: toys[i%len(toys)].ID})
		db.Create(&domain.CustomListItem{ListID: list.ID, ToyID: toys[(i+7)%len(toys)].ID})
	}

	// ================== FOLLOWS ==================
	log.Println("Creating follows...")
	for i, u := range users {
		target := users[(i+1)%len(users)]
		db.Create(&domain.Follow{FollowerID: u.ID, FolloweeID: target.ID})
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")
	for _, t := range toys[:10] {
		var sum, n int
		for _, u := range users {
			if u.ID == t.CreatorID {
				continue
			}
			rating := 3 + rand.Intn(3)
			db.Create(&domain.ToyReview{
				ToyID:   t.ID,
				UserID:  u.ID,
				Rating:  rating,
				Comment: "So huggable",
			})
			sum += rating
			n++
		}
		if n > 0 {
			db.Model(&domain.Toy{}).Where("id = ?", t.ID).
				Update("rating", float64(sum)/float64(n))
		}
	}

	// ================== MESSAGES ==================
	log.Println("Creating messages...")
	for i, u := range users {
		recipient := users[(i+1)%len(users)]
		db.Create(&domain.Message{
			SenderID:    u.ID,
			RecipientID: recipient.ID,
			Content:     fmt.Sprintf("Hi %s! Is Plush %d up for trade?", recipient.Name, i+1),
		})
	}

	log.Println("Seed complete.")
	log.Printf("Users: %d (password collector123), toys: %d", len(users), len(toys))
}
