package emotion

import "strings"

// Label is one of the eight canonical emotions
type Label string

// Canonical emotion labels
const (
	Happy     Label = "happy"
	Sad       Label = "sad"
	Surprised Label = "surprised"
	Angry     Label = "angry"
	Neutral   Label = "neutral"
	Confused  Label = "confused"
	Excited   Label = "excited"
	Calm      Label = "calm"
)

// Labels returns all canonical labels in a stable order
func Labels() []Label {
	return []Label{Happy, Sad, Surprised, Angry, Neutral, Confused, Excited, Calm}
}

// Valid reports whether l is one of the canonical labels
func (l Label) Valid() bool {
	_, ok := metadata[l]
	return ok
}

// Metadata is the presentation data attached to a label
type Metadata struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

var metadata = map[Label]Metadata{
	Happy:     {Description: "Happy", Icon: "😊", Color: "#FFD700"},
	Sad:       {Description: "Sad", Icon: "😢", Color: "#4169E1"},
	Surprised: {Description: "Surprised", Icon: "😲", Color: "#FF6347"},
	Angry:     {Description: "Angry", Icon: "😠", Color: "#DC143C"},
	Neutral:   {Description: "Neutral", Icon: "😐", Color: "#808080"},
	Confused:  {Description: "Confused", Icon: "🤔", Color: "#9370DB"},
	Excited:   {Description: "Excited", Icon: "🤩", Color: "#FF1493"},
	Calm:      {Description: "Calm", Icon: "😌", Color: "#20B2AA"},
}

var unknownMetadata = Metadata{Description: "Unknown", Icon: "🙂", Color: "#808080"}

// MetadataFor returns the fixed presentation metadata for a label
func MetadataFor(l Label) Metadata {
	if m, ok := metadata[l]; ok {
		return m
	}
	return unknownMetadata
}

// ModelVocabulary is the label set reported by face expression models, in
// the order used to break probability ties.
func ModelVocabulary() []string {
	return []string{"happy", "sad", "angry", "fearful", "disgusted", "surprised", "neutral"}
}

var modelMapping = map[string]Label{
	"happy":     Happy,
	"sad":       Sad,
	"angry":     Angry,
	"fearful":   Sad,
	"disgusted": Confused,
	"surprised": Surprised,
	"neutral":   Neutral,
}

// MapModelLabel maps a model expression label onto a canonical label.
// Unrecognised labels map to Neutral.
func MapModelLabel(name string) Label {
	if l, ok := modelMapping[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l
	}
	return Neutral
}
