package models

import "github.com/shopspring/decimal"

// User types
const (
	UserTypeCreator  = "creator"
	UserTypeStandard = "standard"
)

// Post types
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeLive  = "live"
	PostTypeReel  = "reel"
)

// Product types
const (
	ProductTypePhysical      = "physical"
	ProductTypeDigitalCourse = "digital_course"
	ProductTypeDigitalEbook  = "digital_ebook"
	ProductTypeDigitalOther  = "digital_other"
)

// Transaction types
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Notification types
const (
	NotificationNewFollower   = "new_follower"
	NotificationLike          = "like"
	NotificationComment       = "comment"
	NotificationReaction      = "reaction"
	NotificationAffiliateSale = "affiliate_sale"
)

// Affiliate sale fulfillment states
const (
	SaleStatusDelivered  = "delivered"
	SaleStatusWaitlisted = "waitlisted"
)

type User struct {
	ID             string          `json:"id"`
	UserType       string          `json:"userType"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          *string         `json:"phone,omitempty"`
	DocumentID     *string         `json:"documentId,omitempty"`
	ProfilePicture *string         `json:"profilePicture,omitempty"`
	Bio            *string         `json:"bio,omitempty"`
	Credentials    *string         `json:"credentials,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	FollowedUsers  []string        `json:"followedUsers"`
	Card           *PaymentCard    `json:"card,omitempty"`
	StoreID        *string         `json:"storeId,omitempty"`
}

type PaymentCard struct {
	HolderName string `json:"holderName"`
	Last4      string `json:"last4"`
	Brand      string `json:"brand"`
	ExpiryDate string `json:"expiryDate"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Timestamp   int64           `json:"timestamp"`
}

type Post struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Type          string              `json:"type"`
	Content       string              `json:"content"`
	ImageURL      *string             `json:"imageUrl,omitempty"`
	VideoURL      *string             `json:"videoUrl,omitempty"`
	AudioTrackID  *string             `json:"audioTrackId,omitempty"`
	LiveStreamURL *string             `json:"liveStreamUrl,omitempty"`
	IsPinned      bool                `json:"isPinned"`
	ScheduledAt   *int64              `json:"scheduledAt,omitempty"`
	Timestamp     int64               `json:"timestamp"`
	Likes         []string            `json:"likes"`
	Saves         []string            `json:"saves"`
	Shares        []string            `json:"shares"`
	Reactions     map[string][]string `json:"reactions"`
	Comments      []Comment           `json:"comments"`
}

type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// StoreFront is a user's shop. Named to avoid clashing with the data store itself.
type StoreFront struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"`
}

type Product struct {
	ID                      string          `json:"id"`
	StoreID                 string          `json:"storeId"`
	Name                    string          `json:"name"`
	Description             string          `json:"description"`
	Price                   decimal.Decimal `json:"price"`
	ImageURL                string          `json:"imageUrl"`
	Type                    string          `json:"type"`
	DigitalContentURL       *string         `json:"digitalContentUrl,omitempty"`
	AffiliateCommissionRate float64         `json:"affiliateCommissionRate"`
	AverageRating           float64         `json:"averageRating"`
	RatingCount             int             `json:"ratingCount"`
}

type ProductRating struct {
	ID        string `json:"id"`
	SaleID    string `json:"saleId"`
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Timestamp int64  `json:"timestamp"`
}

type AffiliateSale struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"productId"`
	BuyerID          string           `json:"buyerId"`
	AffiliateUserID  string           `json:"affiliateUserId"`
	StoreID          string           `json:"storeId"`
	SaleAmount       decimal.Decimal  `json:"saleAmount"`
	CommissionEarned decimal.Decimal  `json:"commissionEarned"`
	Status           string           `json:"status"`
	IsRated          bool             `json:"isRated"`
	ShippingAddress  *ShippingAddress `json:"shippingAddress,omitempty"`
	Timestamp        int64            `json:"timestamp"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Street   string `json:"street"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Notification struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	RecipientID string  `json:"recipientId"`
	ActorID     string  `json:"actorId"`
	SubjectID   *string `json:"subjectId,omitempty"`
	IsRead      bool    `json:"isRead"`
	Timestamp   int64   `json:"timestamp"`
}

type AudioTrack struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

type Event struct {
	ID          string   `json:"id"`
	HostID      string   `json:"hostId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartsAt    int64    `json:"startsAt"`
	Attendees   []string `json:"attendees"`
	CreatedAt   int64    `json:"createdAt"`
}

type AffiliateLink struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	AffiliateUserID string `json:"affiliateUserId"`
	ProductID       string `json:"productId"`
	CreatedAt       int64  `json:"createdAt"`
}

type AdCampaign struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Title     string          `json:"title"`
	Copy      string          `json:"copy"`
	ImageURL  string          `json:"imageUrl"`
	Budget    decimal.Decimal `json:"budget"`
	CreatedAt int64           `json:"createdAt"`
}

type Conversation struct {
	ID        string `json:"id"`
	UserA     string `json:"userA"`
	UserB     string `json:"userB"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Content        string `json:"content"`
	CreatedAt      int64  `json:"createdAt"`
}
