package cms

import "strconv"

type GroupIndex string

const (
	GroupIndexByID     GroupIndex = "id"
	GroupIndexByName   GroupIndex = "name"
	GroupIndexByHandle GroupIndex = "handle"
)

// IndexGroupsBy re-keys a list of groups by one of their fields. Ids and
// handles are unique in storage; names are not, and when two groups share
// a name the later element wins.
func IndexGroupsBy(groups []Group, key GroupIndex) (map[string]Group, error) {
	indexed := make(map[string]Group, len(groups))

	for _, group := range groups {
		switch key {
		case GroupIndexByID:
			indexed[strconv.FormatInt(group.ID, 10)] = group
		case GroupIndexByName:
			indexed[group.Name] = group
		case GroupIndexByHandle:
			indexed[group.Handle] = group
		default:
			return nil, ErrUnknownGroupIndex
		}
	}

	return indexed, nil
}
