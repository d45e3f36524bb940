package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	photos           map[model.PhotoID]*model.Photo
	playerTags       map[playerTagKey]bool
	teamTags         map[teamTagKey]bool
	folders          map[model.FolderID]*model.Folder
	players          map[model.PlayerID]*model.Player
	teams            map[model.TeamID]*model.Team
	collections      map[model.CollectionID]*model.Collection
	collectionPhotos map[collectionPhotoKey]*model.CollectionPhoto
	auditLogs        []*model.AuditLog
}

type playerTagKey struct {
	photoID  model.PhotoID
	playerID model.PlayerID
}

type teamTagKey struct {
	photoID model.PhotoID
	teamID  model.TeamID
}

type collectionPhotoKey struct {
	collectionID model.CollectionID
	photoID      model.PhotoID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		photos:           make(map[model.PhotoID]*model.Photo),
		playerTags:       make(map[playerTagKey]bool),
		teamTags:         make(map[teamTagKey]bool),
		folders:          make(map[model.FolderID]*model.Folder),
		players:          make(map[model.PlayerID]*model.Player),
		teams:            make(map[model.TeamID]*model.Team),
		collections:      make(map[model.CollectionID]*model.Collection),
		collectionPhotos: make(map[collectionPhotoKey]*model.CollectionPhoto),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Photo operations

func (s *Storage) SavePhoto(ctx context.Context, photo *model.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *photo
	s.photos[photo.ID] = &cp
	return nil
}

func (s *Storage) GetPhoto(ctx context.Context, id model.PhotoID) (*model.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photo, ok := s.photos[id]
	if !ok {
		return nil, model.ErrPhotoNotFound
	}
	return s.photoWithTags(photo), nil
}

func (s *Storage) UpdatePhoto(ctx context.Context, photo *model.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photo.ID]; !ok {
		return model.ErrPhotoNotFound
	}
	cp := *photo
	s.photos[photo.ID] = &cp
	return nil
}

func (s *Storage) DeletePhoto(ctx context.Context, id model.PhotoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.photos, id)
	for k := range s.playerTags {
		if k.photoID == id {
			delete(s.playerTags, k)
		}
	}
	for k := range s.teamTags {
		if k.photoID == id {
			delete(s.teamTags, k)
		}
	}
	for k := range s.collectionPhotos {
		if k.photoID == id {
			delete(s.collectionPhotos, k)
		}
	}
	return nil
}

func (s *Storage) ListPhotos(ctx context.Context, filter model.PhotoFilter) ([]*model.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Photo
	for _, photo := range s.photos {
		if s.matchesFilter(photo, filter) {
			result = append(result, s.photoWithTags(photo))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

func (s *Storage) matchesFilter(photo *model.Photo, filter model.PhotoFilter) bool {
	if len(filter.PlayerIDs) > 0 {
		found := false
		for _, pid := range filter.PlayerIDs {
			if s.playerTags[playerTagKey{photo.ID, pid}] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.TeamIDs) > 0 {
		found := false
		for _, tid := range filter.TeamIDs {
			if s.teamTags[teamTagKey{photo.ID, tid}] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.UploaderID != "" && photo.UploadedBy != filter.UploaderID {
		return false
	}
	if filter.FolderID != nil {
		if photo.FolderID == nil || *photo.FolderID != *filter.FolderID {
			return false
		}
	} else if filter.NoFolder && photo.FolderID != nil {
		return false
	}
	if filter.StartDate != nil && photo.UploadedAt.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && photo.UploadedAt.After(*filter.EndDate) {
		return false
	}
	return true
}

// photoWithTags copies the photo and attaches its tags; caller must hold
// at least a read lock
func (s *Storage) photoWithTags(photo *model.Photo) *model.Photo {
	cp := *photo
	cp.Tags = nil
	cp.TeamTags = nil
	for k := range s.playerTags {
		if k.photoID == photo.ID {
			cp.Tags = append(cp.Tags, model.PhotoTag{PhotoID: k.photoID, PlayerID: k.playerID})
		}
	}
	for k := range s.teamTags {
		if k.photoID == photo.ID {
			cp.TeamTags = append(cp.TeamTags, model.PhotoTeamTag{PhotoID: k.photoID, TeamID: k.teamID})
		}
	}
	sort.Slice(cp.Tags, func(i, j int) bool { return cp.Tags[i].PlayerID < cp.Tags[j].PlayerID })
	sort.Slice(cp.TeamTags, func(i, j int) bool { return cp.TeamTags[i].TeamID < cp.TeamTags[j].TeamID })
	return &cp
}

// Tag operations

func (s *Storage) AddPlayerTag(ctx context.Context, photoID model.PhotoID, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photoID]; !ok {
		return model.ErrPhotoNotFound
	}
	key := playerTagKey{photoID, playerID}
	if s.playerTags[key] {
		return model.ErrAlreadyExists
	}
	s.playerTags[key] = true
	return nil
}

func (s *Storage) RemovePlayerTag(ctx context.Context, photoID model.PhotoID, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.playerTags, playerTagKey{photoID, playerID})
	return nil
}

func (s *Storage) AddTeamTag(ctx context.Context, photoID model.PhotoID, teamID model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photoID]; !ok {
		return model.ErrPhotoNotFound
	}
	key := teamTagKey{photoID, teamID}
	if s.teamTags[key] {
		return model.ErrAlreadyExists
	}
	s.teamTags[key] = true
	return nil
}

func (s *Storage) RemoveTeamTag(ctx context.Context, photoID model.PhotoID, teamID model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teamTags, teamTagKey{photoID, teamID})
	return nil
}

// Folder operations

func (s *Storage) SaveFolder(ctx context.Context, folder *model.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *folder
	s.folders[folder.ID] = &cp
	return nil
}

func (s *Storage) GetFolder(ctx context.Context, id model.FolderID) (*model.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folder, ok := s.folders[id]
	if !ok {
		return nil, model.ErrFolderNotFound
	}
	cp := *folder
	return &cp, nil
}

func (s *Storage) UpdateFolder(ctx context.Context, folder *model.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[folder.ID]; !ok {
		return model.ErrFolderNotFound
	}
	cp := *folder
	s.folders[folder.ID] = &cp
	return nil
}

func (s *Storage) DeleteFolder(ctx context.Context, id model.FolderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[id]; !ok {
		return model.ErrFolderNotFound
	}
	for _, photo := range s.photos {
		if photo.FolderID != nil && *photo.FolderID == id {
			return model.ErrFolderNotEmpty
		}
	}
	for _, folder := range s.folders {
		if folder.ParentID != nil && *folder.ParentID == id {
			return model.ErrFolderNotEmpty
		}
	}
	delete(s.folders, id)
	return nil
}

func (s *Storage) ListFolders(ctx context.Context) ([]*model.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Folder, 0, len(s.folders))
	for _, folder := range s.folders {
		cp := *folder
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Roster operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *player
	s.players[player.ID] = &cp
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	cp := *player
	s.players[player.ID] = &cp
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	for k := range s.playerTags {
		if k.playerID == id {
			delete(s.playerTags, k)
		}
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		cp := *player
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *team
	s.teams[team.ID] = &cp
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	cp := *team
	return &cp, nil
}

func (s *Storage) UpdateTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[team.ID]; !ok {
		return model.ErrTeamNotFound
	}
	cp := *team
	s.teams[team.ID] = &cp
	return nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, id)
	for k := range s.teamTags {
		if k.teamID == id {
			delete(s.teamTags, k)
		}
	}
	for _, player := range s.players {
		if player.TeamID != nil && *player.TeamID == id {
			player.TeamID = nil
		}
	}
	return nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Team, 0, len(s.teams))
	for _, team := range s.teams {
		cp := *team
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Collection operations

func (s *Storage) SaveCollection(ctx context.Context, collection *model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *collection
	s.collections[collection.ID] = &cp
	return nil
}

func (s *Storage) GetCollection(ctx context.Context, id model.CollectionID) (*model.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	collection, ok := s.collections[id]
	if !ok {
		return nil, model.ErrCollectionNotFound
	}
	cp := *collection
	return &cp, nil
}

func (s *Storage) GetCollectionByToken(ctx context.Context, token string) (*model.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, collection := range s.collections {
		if collection.ShareToken != "" && strings.EqualFold(collection.ShareToken, token) {
			cp := *collection
			return &cp, nil
		}
	}
	return nil, model.ErrCollectionNotFound
}

func (s *Storage) UpdateCollection(ctx context.Context, collection *model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection.ID]; !ok {
		return model.ErrCollectionNotFound
	}
	cp := *collection
	s.collections[collection.ID] = &cp
	return nil
}

func (s *Storage) DeleteCollection(ctx context.Context, id model.CollectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, id)
	for k := range s.collectionPhotos {
		if k.collectionID == id {
			delete(s.collectionPhotos, k)
		}
	}
	return nil
}

func (s *Storage) ListCollections(ctx context.Context, userID string) ([]*model.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Collection
	for _, collection := range s.collections {
		if userID == "" || collection.UserID == userID {
			cp := *collection
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Storage) AddCollectionPhoto(ctx context.Context, cp *model.CollectionPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[cp.CollectionID]; !ok {
		return model.ErrCollectionNotFound
	}
	if _, ok := s.photos[cp.PhotoID]; !ok {
		return model.ErrPhotoNotFound
	}
	key := collectionPhotoKey{cp.CollectionID, cp.PhotoID}
	if _, ok := s.collectionPhotos[key]; ok {
		return model.ErrAlreadyExists
	}
	entry := *cp
	s.collectionPhotos[key] = &entry
	return nil
}

func (s *Storage) RemoveCollectionPhoto(ctx context.Context, collectionID model.CollectionID, photoID model.PhotoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collectionPhotos, collectionPhotoKey{collectionID, photoID})
	return nil
}

func (s *Storage) ListCollectionPhotos(ctx context.Context, collectionID model.CollectionID) ([]*model.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []*model.CollectionPhoto
	for k, cp := range s.collectionPhotos {
		if k.collectionID == collectionID {
			members = append(members, cp)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].AddedAt.After(members[j].AddedAt)
	})

	result := make([]*model.Photo, 0, len(members))
	for _, cp := range members {
		if photo, ok := s.photos[cp.PhotoID]; ok {
			result = append(result, s.photoWithTags(photo))
		}
	}
	return result, nil
}

// Audit operations

func (s *Storage) SaveAuditLog(ctx context.Context, entry *model.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.auditLogs = append(s.auditLogs, &cp)
	return nil
}

func (s *Storage) QueryAuditLogs(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*model.AuditLog
	for _, entry := range s.auditLogs {
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && entry.ResourceType != filter.ResourceType {
			continue
		}
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && entry.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && entry.CreatedAt.After(*filter.EndDate) {
			continue
		}
		cp := *entry
		matched = append(matched, &cp)
	}

	// Newest first; ties keep insertion order
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	start := (page - 1) * limit
	if start >= total {
		return []*model.AuditLog{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Stats

func (s *Storage) Stats(ctx context.Context) (*model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.Stats{
		PhotoCount:      len(s.photos),
		CollectionCount: len(s.collections),
		FolderCount:     len(s.folders),
	}
	for _, photo := range s.photos {
		stats.TotalSizeBytes += photo.SizeBytes
	}
	return stats, nil
}
