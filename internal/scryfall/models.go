package scryfall

import "fmt"

// Card represents one card print from Scryfall, with the face data the
// layout builder reads. Multi-faced prints carry their faces in CardFaces
// and leave most face-level fields empty at the top level.
type Card struct {
	// Core fields
	Object   string `json:"object"`
	ID       string `json:"id"`
	OracleID string `json:"oracle_id,omitempty"`

	// Card details
	Name           string     `json:"name"`
	Lang           string     `json:"lang"`
	Layout         string     `json:"layout"`
	ManaCost       string     `json:"mana_cost,omitempty"`
	TypeLine       string     `json:"type_line"`
	OracleText     string     `json:"oracle_text,omitempty"`
	Colors         []string   `json:"colors,omitempty"`
	ColorIdentity  []string   `json:"color_identity,omitempty"`
	ColorIndicator []string   `json:"color_indicator,omitempty"`
	Keywords       []string   `json:"keywords,omitempty"`
	ImageURIs      *ImageURIs `json:"image_uris,omitempty"`

	// Gameplay
	Power     string `json:"power,omitempty"`
	Toughness string `json:"toughness,omitempty"`
	Loyalty   string `json:"loyalty,omitempty"`

	// Print details
	SetCode         string   `json:"set"`
	SetName         string   `json:"set_name"`
	CollectorNumber string   `json:"collector_number"`
	Rarity          string   `json:"rarity"`
	Artist          string   `json:"artist,omitempty"`
	FlavorText      string   `json:"flavor_text,omitempty"`
	Watermark       string   `json:"watermark,omitempty"`
	BorderColor     string   `json:"border_color,omitempty"`
	FrameEffects    []string `json:"frame_effects,omitempty"`
	ScryfallURI     string   `json:"scryfall_uri,omitempty"`

	// Localized print fields, set on non-English prints
	PrintedName     string `json:"printed_name,omitempty"`
	PrintedText     string `json:"printed_text,omitempty"`
	PrintedTypeLine string `json:"printed_type_line,omitempty"`

	// Card faces (transform, modal DFC, split, adventure)
	CardFaces []CardFace `json:"card_faces,omitempty"`

	// Related parts (meld pieces, tokens, combo pieces)
	AllParts []RelatedCard `json:"all_parts,omitempty"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Object          string     `json:"object"`
	Name            string     `json:"name"`
	ManaCost        string     `json:"mana_cost,omitempty"`
	TypeLine        string     `json:"type_line"`
	OracleText      string     `json:"oracle_text,omitempty"`
	Colors          []string   `json:"colors,omitempty"`
	ColorIndicator  []string   `json:"color_indicator,omitempty"`
	Power           string     `json:"power,omitempty"`
	Toughness       string     `json:"toughness,omitempty"`
	Loyalty         string     `json:"loyalty,omitempty"`
	Artist          string     `json:"artist,omitempty"`
	FlavorText      string     `json:"flavor_text,omitempty"`
	Watermark       string     `json:"watermark,omitempty"`
	ImageURIs       *ImageURIs `json:"image_uris,omitempty"`
	PrintedName     string     `json:"printed_name,omitempty"`
	PrintedText     string     `json:"printed_text,omitempty"`
	PrintedTypeLine string     `json:"printed_type_line,omitempty"`
}

// RelatedCard links a print to an associated component, like the result
// of a meld pair.
type RelatedCard struct {
	Object    string `json:"object"`
	ID        string `json:"id"`
	Component string `json:"component"`
	Name      string `json:"name"`
	TypeLine  string `json:"type_line"`
	URI       string `json:"uri"`
}

// ImageURIs contains URLs for card images in various croppings.
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// Scan returns the image URL used for the reference scan paste, largest
// cropping first.
func (c *Card) Scan() string {
	uris := c.ImageURIs
	if uris == nil && len(c.CardFaces) > 0 {
		uris = c.CardFaces[0].ImageURIs
	}
	if uris == nil {
		return ""
	}
	if uris.Large != "" {
		return uris.Large
	}
	return uris.BorderCrop
}

// Set represents a Magic set from Scryfall.
type Set struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	SetType       string `json:"set_type"`
	ReleasedAt    string `json:"released_at,omitempty"`
	CardCount     int    `json:"card_count"`
	PrintedSize   int    `json:"printed_size,omitempty"`
	ParentSetCode string `json:"parent_set_code,omitempty"`
	Digital       bool   `json:"digital"`
	IconSVGURI    string `json:"icon_svg_uri"`
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Object   string   `json:"object"`
	Code     string   `json:"code"`
	Status   int      `json:"status"`
	Details  string   `json:"details"`
	Type     string   `json:"type,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError represents a 404 from the API.
type NotFoundError struct {
	URL string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
