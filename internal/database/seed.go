package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: two author
// accounts, a small category tree, and a handful of recipes with ratings
// so search and suggestions are explorable out of the box. No-op if any
// users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	marta, err := seedUser(db, "marta@platepress.local", string(hash), "Marta", "marta")
	if err != nil {
		return err
	}
	jonas, err := seedUser(db, "jonas@platepress.local", string(hash), "Jonas", "jonas")
	if err != nil {
		return err
	}

	mains, err := seedCategory(db, "Main Dishes", "main-dishes", nil, 0)
	if err != nil {
		return err
	}
	pasta, err := seedCategory(db, "Pasta", "pasta", &mains, 0)
	if err != nil {
		return err
	}
	desserts, err := seedCategory(db, "Desserts", "desserts", nil, 1)
	if err != nil {
		return err
	}
	salads, err := seedCategory(db, "Salads", "salads", nil, 2)
	if err != nil {
		return err
	}

	carbonara, err := seedRecipe(db, seedRecipeInput{
		title:        "Classic Spaghetti Carbonara",
		description:  "A Roman classic: spaghetti with eggs, pecorino, and guanciale.",
		instructions: "1. Boil the spaghetti.\n2. Fry the guanciale.\n3. Toss with the egg and cheese mixture off the heat.",
		difficulty:   "medium",
		method:       "boiling",
		prep:         10, cook: 20, servings: 4,
		published: true,
		author:    marta,
		ingredients: []seedIngredient{
			{"spaghetti", "400", "g"},
			{"guanciale", "150", "g"},
			{"eggs", "4", ""},
			{"pecorino romano", "100", "g"},
		},
		tags:       []string{"italian", "pasta"},
		categories: []uuid.UUID{mains, pasta},
	})
	if err != nil {
		return err
	}

	cookies, err := seedRecipe(db, seedRecipeInput{
		title:        "Chocolate Chip Cookies",
		description:  "Chewy cookies with plenty of chocolate chips.",
		instructions: "1. Cream butter and sugar.\n2. Fold in flour and chips.\n3. Bake at 180C for 12 minutes.",
		difficulty:   "easy",
		method:       "baking",
		prep:         15, cook: 12, servings: 24,
		published: true,
		author:    jonas,
		ingredients: []seedIngredient{
			{"flour", "300", "g"},
			{"butter", "200", "g"},
			{"chocolate chips", "1", "cup"},
			{"sugar", "150", "g"},
		},
		tags:       []string{"dessert", "baking"},
		categories: []uuid.UUID{desserts},
	})
	if err != nil {
		return err
	}

	_, err = seedRecipe(db, seedRecipeInput{
		title:        "Vegan Buddha Bowl",
		description:  "A plant-based bowl with quinoa, roasted chickpeas, and tahini dressing. Gluten free.",
		instructions: "1. Cook the quinoa.\n2. Roast the chickpeas.\n3. Assemble with greens and dressing.",
		difficulty:   "easy",
		method:       "roasting",
		prep:         20, cook: 25, servings: 2,
		published: true,
		author:    marta,
		nutrition: `{"calories": 520, "protein": 18, "carbs": 64, "fat": 22}`,
		ingredients: []seedIngredient{
			{"quinoa", "1", "cup"},
			{"chickpeas", "1", "can"},
			{"tahini", "2", "tbsp"},
			{"chopped kale", "2", "cups"},
		},
		tags:       []string{"vegan", "gluten-free", "healthy"},
		categories: []uuid.UUID{salads},
	})
	if err != nil {
		return err
	}

	// One draft so the author-visibility path has data in development.
	_, err = seedRecipe(db, seedRecipeInput{
		title:       "Experimental Miso Brownies",
		description: "Work in progress.",
		difficulty:  "hard",
		method:      "baking",
		prep:        30, cook: 35, servings: 12,
		published: false,
		author:    jonas,
		ingredients: []seedIngredient{
			{"dark chocolate", "200", "g"},
			{"white miso", "1", "tbsp"},
		},
		tags: []string{"dessert"},
	})
	if err != nil {
		return err
	}

	for _, r := range []struct {
		recipe uuid.UUID
		score  int
	}{
		{carbonara, 5},
		{cookies, 4},
	} {
		for _, user := range []uuid.UUID{marta, jonas} {
			_, err := db.Exec(`
				INSERT INTO ratings (recipe_id, user_id, score) VALUES ($1, $2, $3)
				ON CONFLICT (recipe_id, user_id) DO UPDATE SET score = EXCLUDED.score
			`, r.recipe, user, r.score)
			if err != nil {
				return fmt.Errorf("seed rating: %w", err)
			}
		}
	}

	slog.Info("database seeded with development data",
		"users", 2, "categories", 4, "recipes", 4)
	return nil
}

func seedUser(db *sql.DB, email, hash, name, handle string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, handle)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, email, hash, name, handle).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("seed user %s: %w", handle, err)
	}
	return id, nil
}

func seedCategory(db *sql.DB, name, slug string, parent *uuid.UUID, sortOrder int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO categories (name, slug, parent_id, sort_order, is_active)
		VALUES ($1, $2, $3, $4, TRUE) RETURNING id
	`, name, slug, parent, sortOrder).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("seed category %s: %w", slug, err)
	}
	return id, nil
}

type seedIngredient struct {
	name, amount, unit string
}

type seedRecipeInput struct {
	title, description, instructions string
	difficulty, method               string
	prep, cook, servings             int
	published                        bool
	author                           uuid.UUID
	nutrition                        string
	ingredients                      []seedIngredient
	tags                             []string
	categories                       []uuid.UUID
}

func seedRecipe(db *sql.DB, in seedRecipeInput) (uuid.UUID, error) {
	var nutrition any
	if in.nutrition != "" {
		nutrition = in.nutrition
	}

	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO recipes (title, description, instructions, difficulty,
		                     cooking_method, prep_time_minutes, cook_time_minutes,
		                     servings, is_published, author_id, nutrition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, in.title, in.description, in.instructions, in.difficulty, in.method,
		in.prep, in.cook, in.servings, in.published, in.author, nutrition,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("seed recipe %s: %w", in.title, err)
	}

	for i, ing := range in.ingredients {
		_, err := db.Exec(`
			INSERT INTO recipe_ingredients (recipe_id, name, amount, unit, position)
			VALUES ($1, $2, $3, $4, $5)
		`, id, ing.name, ing.amount, ing.unit, i)
		if err != nil {
			return uuid.Nil, fmt.Errorf("seed ingredient %s: %w", ing.name, err)
		}
	}
	for _, tag := range in.tags {
		_, err := db.Exec(`
			INSERT INTO recipe_tags (recipe_id, tag) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, id, tag)
		if err != nil {
			return uuid.Nil, fmt.Errorf("seed tag %s: %w", tag, err)
		}
	}
	for _, cat := range in.categories {
		_, err := db.Exec(`
			INSERT INTO recipe_categories (recipe_id, category_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, id, cat)
		if err != nil {
			return uuid.Nil, fmt.Errorf("seed category link: %w", err)
		}
	}
	return id, nil
}
