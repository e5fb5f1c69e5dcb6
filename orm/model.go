package orm

import (
	"time"
)

type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName    string `gorm:"size:150;not null" json:"first_name"`
	LastName     string `gorm:"size:150;not null" json:"last_name"`
	Avatar       string `gorm:"size:255" json:"avatar,omitempty"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

// Tag is a global dictionary entry. Names are stored lower-cased and are
// unique case-insensitively.
type Tag struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:256;uniqueIndex;not null" json:"name"`
}

type Ingredient struct {
	ID              int64  `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	MeasurementUnit string `gorm:"size:64;not null" json:"measurement_unit"`

	// UsageCount is computed on listing, not stored.
	UsageCount int64 `gorm:"-" json:"usage_count"`
}

type Recipe struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	AuthorID    int64     `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Image       string    `gorm:"size:255;not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null;check:cooking_time >= 1 AND cooking_time <= 32000" json:"cooking_time"`
	Views       int64     `gorm:"not null;default:0" json:"views"`
	PubDate     time.Time `gorm:"not null;autoCreateTime" json:"pub_date"`

	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`

	// Hydrated relations, filled by the service layer.
	Tags        []string           `gorm:"-" json:"tags"`
	Ingredients []IngredientAmount `gorm:"-" json:"ingredients"`
}

// IngredientAmount is the hydrated form of a recipe-ingredient link.
type IngredientAmount struct {
	IngredientID int64 `json:"ingredient_id"`
	Amount       int   `json:"amount"`
}

// RecipeTag joins a recipe to a tag, unique per (recipe, tag) pair.
// Re-associating refreshes created_at instead of duplicating.
type RecipeTag struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:idx_recipe_tag" json:"recipe_id"`
	TagID     int64     `gorm:"not null;uniqueIndex:idx_recipe_tag" json:"tag_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Tag    *Tag    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeTag) TableName() string { return "recipe_tag" }

type RecipeIngredient struct {
	ID           int64 `gorm:"primaryKey" json:"id"`
	RecipeID     int64 `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID int64 `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int   `gorm:"not null;check:amount >= 1 AND amount <= 32000" json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// Comment requires at least one of text or image to be present.
type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	RecipeID  int64     `gorm:"not null;index" json:"recipe_id"`
	Text      string    `gorm:"type:text" json:"text,omitempty"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// Rating is immutable once created: at most one per (user, recipe) pair.
type Rating struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_rating_user_recipe" json:"user_id"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:idx_rating_user_recipe" json:"recipe_id"`
	Rate      int       `gorm:"not null;check:rate >= 1 AND rate <= 5" json:"rate"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

type Favorite struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	UserID   int64 `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID int64 `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

type ShoppingListItem struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	UserID   int64 `gorm:"not null;uniqueIndex:idx_shopping_user_recipe" json:"user_id"`
	RecipeID int64 `gorm:"not null;uniqueIndex:idx_shopping_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShoppingListItem) TableName() string { return "shopping_list" }

// Subscription links a follower to a followed user. Self-subscription is
// rejected in the service layer before any write.
type Subscription struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"user_id"`
	FollowingID int64     `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"following_id"`
	AddedAt     time.Time `gorm:"not null;autoCreateTime" json:"added_at"`

	User      *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}
