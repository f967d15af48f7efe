package archive

import "github.com/camden-git/filmreel/models"

// SeedPhotos returns a fresh copy of the collection used when nothing has been persisted yet.
func SeedPhotos() models.Collection {
	return models.Collection{
		{
			ID:          "1",
			URL:         "https://picsum.photos/id/10/800/1000",
			Title:       "Morning Haze",
			Description: "Caught the first light hitting the coastal fog.",
			Date:        "2025-11-12",
			ReelYear:    "2025",
			Location:    "Pacific Coast, CA",
			CameraSettings: &models.CameraSettings{
				Camera: "Leica M6", Film: "Portra 400", FStop: "f/2.8", Shutter: "1/125s",
			},
		},
		{
			ID:          "2",
			URL:         "https://picsum.photos/id/14/1000/800",
			Title:       "Urban Echo",
			Description: "The geometry of solitude in the city center.",
			Date:        "2025-12-05",
			ReelYear:    "2025",
			Location:    "Tokyo, Japan",
			CameraSettings: &models.CameraSettings{
				Camera: "Fujifilm TX-1", Film: "Cinestill 800T", FStop: "f/4", Shutter: "1/60s",
			},
		},
		{
			ID:          "3",
			URL:         "https://picsum.photos/id/29/800/800",
			Title:       "Rusty Dreams",
			Description: "Details of an abandoned shipyard.",
			Date:        "2024-01-20",
			ReelYear:    "2024",
			Location:    "Brooklyn Navy Yard",
			CameraSettings: &models.CameraSettings{
				Camera: "Nikon FM2", Film: "Kodak Gold 200", FStop: "f/8", Shutter: "1/250s",
			},
		},
		{
			ID:          "4",
			URL:         "https://picsum.photos/id/33/700/900",
			Title:       "Still Life with Shadow",
			Description: "A quiet moment at home.",
			Date:        "2024-02-14",
			ReelYear:    "2024",
			Location:    "Studio Loft",
			CameraSettings: &models.CameraSettings{
				Camera: "Pentax 67", Film: "Ilford HP5 Plus", FStop: "f/4.5", Shutter: "1/30s",
			},
		},
		{
			ID:          "5",
			URL:         "https://picsum.photos/id/42/1100/700",
			Title:       "Desert Wind",
			Description: "Vastness captured in panoramas.",
			Date:        "2023-10-10",
			ReelYear:    "2023",
			Location:    "Joshua Tree",
			CameraSettings: &models.CameraSettings{
				Camera: "Hasselblad 500C", Film: "Ektar 100", FStop: "f/11", Shutter: "1/500s",
			},
		},
	}
}
