package ws

import (
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"go-settlers/game"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 将 HTTP 请求升级为 WebSocket 连接
func upgradeConnection(c *gin.Context) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket 升级失败:", err)
	}
	return conn, err
}

func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}

// decodePayload 把前端 JSON 消息体解析成具体 payload 结构
func decodePayload(msgMap map[string]interface{}, out interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     out,
		TagName:    "json",
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(msgMap)
}

// toResourceMap 把前端的 map[string]int 转成引擎的资源键
func toResourceMap(in map[string]int) map[game.ResourceType]int {
	out := make(map[game.ResourceType]int, len(in))
	for k, v := range in {
		out[game.ResourceType(k)] = v
	}
	return out
}

// newConnID 每条连接生成一个短 ID，重连时引擎会把旧身份换绑过来
func newConnID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
